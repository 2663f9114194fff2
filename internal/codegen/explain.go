package codegen

import (
	"fmt"
	"strings"
)

// ExplainSections lists the section keys Explain always produces, in
// display order.
var ExplainSections = []string{"overview", "architecture", "dependencies", "components", "workflow", "examples"}

// Explain renders the six-section documentation for a generated program.
// Pure templating over session fields; no gateway call.
func Explain(goal, agentName string, subtasks []string) map[string]string {
	if agentName == "" {
		agentName = DefaultAgentName
	}
	n := len(subtasks)

	overview := fmt.Sprintf(`This is a %s system designed to %s.

The generated program uses LangGraph for workflow orchestration and the Together API for language model calls.
It implements a multi-step agent workflow with %d main processing steps.

Key Features:
- File ingestion with per-extension dispatch (CSV, Excel, SQLite, SQL scripts, JSON, text)
- Multi-step workflow processing with error handling
- Running validation message log across all steps
- Typed state record threaded through every step`, agentName, strings.ToLower(goal), n)

	architecture := fmt.Sprintf(`System Architecture:

1. Ingestion Layer (file_agent):
   - Scans user input and answers for file references
   - Loads each file by extension into the shared files map
   - Records a per-file success or failure note

2. Agent Layer (LangGraph):
   - %d specialized step functions, one per subtask
   - Linear graph: file_agent -> step_1 -> ... -> step_%d -> END
   - State management between processing steps
   - Error flagging without aborting the workflow

3. State Layer:
   - AgentState TypedDict shared by every node
   - One optional result field per step
   - Validation messages and error flag bookkeeping

4. Integration Layer:
   - Together API for language model processing
   - File system and SQLite access during ingestion`, n, n)

	dependencies := `Core Dependencies:

- langgraph: Graph-based workflow orchestration
- together: AI model API client for language processing
- pandas: Tabular file loading (CSV, Excel)
- sqlite3: Database file handling and SQL script execution
- json: Configuration and JSON file parsing
- typing: Type hints for the state record

Optional Dependencies (based on file types):
- openpyxl: Excel file processing backend for pandas`

	var componentSteps strings.Builder
	for i, subtask := range subtasks {
		fmt.Fprintf(&componentSteps, `
   - agent_step_%d: %s
     * Reads the previous step's result as input
     * Looks up its requirements from the follow-up answers
     * Appends a status line and stores its result
`, i+1, subtask)
	}

	components := fmt.Sprintf(`Core Components:

1. AgentState (TypedDict):
   - Manages workflow state across all processing steps
   - Stores user input, validation messages, and results
   - Tracks the error flag and ingested files

2. Step Functions (%d functions):
%s
3. file_agent:
   - Extension-dispatched file loading
   - Continues past individual file failures

4. create_workflow:
   - Builds and compiles the linear StateGraph
   - Wires ingestion ahead of every step`, n, componentSteps.String())

	var workflowSteps strings.Builder
	for i, subtask := range subtasks {
		fmt.Fprintf(&workflowSteps, "Step %d: %s\n", i+1, subtask)
	}

	workflow := fmt.Sprintf(`Workflow Process:

Initialization:
1. Construct the initial AgentState with user input and answers
2. Build the LangGraph workflow with one node per step
3. Run file ingestion before the first step

Processing Flow:
%s
Each step includes:
- Reading the previous step's output (or the raw input for step 1)
- AI-powered processing via the Together API
- Status logging and state updates
- Error flagging on exception, without halting the run

Completion:
- The final step's edge terminates the graph
- The entry point prints the message log and each step's result`, workflowSteps.String())

	examples := fmt.Sprintf(`Usage Examples:

1. Basic Workflow Execution:
   python agent.py

2. Supplying Real Input:
   Replace the "<<< PUT USER INPUT HERE >>>" placeholder in __main__
   with your input text, including any filenames to ingest.

3. Programmatic Use:
   from agent import create_workflow, AgentState
   wf = create_workflow()
   result = wf.invoke(AgentState(user_input="process invoices.csv",
                                 follow_up_answers={},
                                 validation_messages=[],
                                 error_occurred=False,
                                 files={}))

4. Inspecting Results:
   result["validation_messages"] holds the step-by-step log;
   result["step_%d_result"] holds the final step's output for %s.`, n, agentName)

	return map[string]string{
		"overview":     overview,
		"architecture": architecture,
		"dependencies": dependencies,
		"components":   components,
		"workflow":     workflow,
		"examples":     examples,
	}
}
