package learning

const extractSystemPrompt = `You are an educational assistant that turns study material into structured data for learning games. Extract entities from the provided text and return a single JSON object. Do not add any commentary or markdown formatting to your response.

The JSON object must have four root keys:

1. 'characters': people, gods, creatures or other actors mentioned. Each has:
   * 'name': canonical name.
   * 'role': short role label (hero, god, teacher, ...).
   * 'description': one or two sentences.
2. 'locations': places where things happen. Each has 'name' and 'description'.
3. 'events': key happenings in order. Each has 'name', 'description' (what happened) and 'participants' (array of names).
4. 'objects': important artifacts or items. Each has 'name' and 'purpose'.

**Rules**:
- Extract only what the text states.
- Use empty arrays for categories with nothing to extract.
- Write values in the language of the source text.
- Output only the JSON object.`

const distractorPrompt = `Based on the following context, generate 3 WRONG but contextually relevant answer options.

Context: %s

Character: %s
Correct role: %s

Requirements for the wrong options:
1. They must be relevant to the subject of the text (history, mythology, literature and so on).
2. They must be PLAUSIBLE but wrong for this character.
3. They must differ from each other.
4. Do not include the correct answer.
5. Write them in the language of the correct role.

Example for Greek mythology: if the correct answer is "God of war", wrong options could be "God of the seas", "God of the forge", "King of the gods".

Return ONLY JSON in this format:
{"distractors": ["option 1", "option 2", "option 3"]}`

const classifySystemPrompt = `You are an expert in analysing study material. Given samples of the entities extracted from a text, determine:

1. The PRIMARY CONTENT TYPE (choose one):
   - NARRATIVE: stories, chronologies, biographies, events with characters
   - PROCESS: algorithms, instructions, sequences of steps, reactions
   - STRUCTURE: components of systems, devices, anatomy
   - CONCEPT: theories, definitions, abstract or philosophical ideas
   - MIXED: several of the above
2. If MIXED, up to two dominant types in descending order as 'secondary_types'; otherwise an empty array.
3. Whether the material should be split into chapters as 'split_recommendation': "single_topic", "can_split" or "should_split".
4. 'confidence' from 0 to 1.
5. 'reason': a one or two sentence rationale.

Return ONLY the JSON object with keys primary_type, secondary_types, split_recommendation, confidence and reason.`

const narrativeSystemPrompt = `You create narrative learning content. Using only the characters, events and locations provided, write:

1. 'story': a short story of two to four paragraphs that retells the events.
2. 'dialog': a dialogue between two of the characters with 'participants' (the two names) and 'lines' (each with 'speaker' and 'text'), six to ten lines.
3. 'interactive_questions': exactly two comprehension questions about the story, each with 'question', 'options' (four strings) and 'correct' (zero-based index of the right option).

Write in the language of the provided names. Return ONLY the JSON object.`
