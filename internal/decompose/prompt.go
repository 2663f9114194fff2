package decompose

// subtaskPrompt is the prompt template for breaking an objective into
// implementation steps. Arguments: objective, file context block.
const subtaskPrompt = `You are an expert project manager. Break down this objective into exactly 4-5 specific, actionable subtasks.

PROJECT OBJECTIVE: %s
%s
REQUIREMENTS:
- Each subtask should be specific and implementable
- Use clear, technical language appropriate for the domain
- Focus on concrete development/implementation steps
- Maintain logical sequence and dependencies
- Return as a clean numbered list

SUBTASKS FOR THIS OBJECTIVE:`

// editPrompt is the prompt template for natural-language list modification.
// Arguments: current numbered list, user request.
const editPrompt = `You are an intelligent assistant responsible for modifying a list of subtasks based on user instructions.

The user may express their wishes in natural language, in various forms.
Possible commands include adding, removing, editing, or reordering subtasks.

Examples of natural requests:
- "Add a new step: Implement security audit after step 3"
- "Remove step 2"
- "Please change step 1 to focus on data validation"
- "Insert a new subtask between steps 4 and 5: Conduct code review"
- "Move testing to be the last step"

Read the user's input, understand their intent, and return ONLY the updated numbered list of subtasks.

Current subtasks:
%s

User request: %s

Return only the updated numbered subtask list:`
