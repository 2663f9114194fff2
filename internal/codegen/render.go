package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultAgentName is used when the session never names its agent.
const DefaultAgentName = "MultiAgent"

const programPrologue = `from typing import TypedDict, Optional, List, Any
from langgraph.graph import StateGraph, END
from together import Together

def get_together_client():
    return Together(api_key="your_api_key_here")

client = get_together_client()

def llm_invoke(prompt: str, max_tokens: int = 1024) -> str:
    try:
        resp = client.completions.create(
            model="mistralai/Mixtral-8x7B-Instruct-v0.1",
            prompt=prompt,
            max_tokens=max_tokens,
            temperature=0.2
        )
        return resp.choices[0].text.strip()
    except Exception as e:
        return f"Error: {e}"
`

// fileAgentRoutine references AgentState, so it is emitted after the state
// record definition.
const fileAgentRoutine = `
# File Agent
def file_agent(state: AgentState) -> AgentState:
    import pandas as pd, sqlite3, json, os
    messages = state.get("validation_messages", [])
    files = {}

    uploaded_files = []
    if state.get("user_input"):
        uploaded_files.extend([tok for tok in state["user_input"].split() if "." in tok])
    if state.get("follow_up_answers"):
        for ans in state["follow_up_answers"].values():
            if isinstance(ans, str):
                uploaded_files.extend([tok for tok in ans.split() if "." in tok])

    for file_path in uploaded_files:
        ext = os.path.splitext(file_path)[-1].lower()
        var_name = os.path.basename(file_path).replace(".", "_").replace(" ", "_").lower()
        try:
            if ext == ".csv":
                files[var_name] = pd.read_csv(file_path)
            elif ext in [".xlsx", ".xls"]:
                files[var_name] = pd.read_excel(file_path)
            elif ext in [".sqlite", ".db"]:
                conn = sqlite3.connect(file_path)
                files[var_name] = conn
            elif ext == ".sql":
                with open(file_path, "r") as f:
                    sql_script = f.read()
                conn = sqlite3.connect(":memory:")
                conn.executescript(sql_script)
                files[var_name] = conn
            elif ext == ".json":
                with open(file_path, "r") as f:
                    files[var_name] = json.load(f)
            elif ext in [".txt", ".md"]:
                with open(file_path, "r") as f:
                    files[var_name] = f.read()
            else:
                files[var_name] = None
            messages.append(f"Loaded file: {file_path}")
        except Exception as e:
            messages.append(f"Error loading {file_path}: {e}")

    return {**state, "files": files, "validation_messages": messages}
`

// Render templates the session into a complete Python agent program: a typed
// state record, a file-ingestion routine, one step routine per subtask wired
// into a linear graph, and a runnable entry point. Pure string assembly;
// identical inputs always produce byte-identical output.
func Render(goal, agentName string, subtasks []string, answers map[string]string) string {
	if agentName == "" {
		agentName = DefaultAgentName
	}
	n := len(subtasks)

	var b strings.Builder

	fmt.Fprintf(&b, "\"\"\"\nAuto-generated agent script\nAgent: %s\nGoal: %s\n\"\"\"\n\n", agentName, goal)
	b.WriteString(programPrologue)

	// Typed state record: bookkeeping fields plus one result slot per step.
	b.WriteString("\nclass AgentState(TypedDict):\n")
	b.WriteString("    user_input: Optional[str]\n")
	b.WriteString("    follow_up_answers: Optional[dict]\n")
	b.WriteString("    validation_messages: Optional[List[str]]\n")
	b.WriteString("    error_occurred: Optional[bool]\n")
	b.WriteString("    files: Optional[dict]\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "    step_%d_result: Optional[Any]\n", i)
	}

	b.WriteString(fileAgentRoutine)

	for i, subtask := range subtasks {
		writeStepFunction(&b, i+1, n, subtask, goal)
	}

	b.WriteString("\ndef create_workflow():\n")
	b.WriteString("    wf = StateGraph(AgentState)\n")
	b.WriteString("    wf.add_node(\"file_agent\", file_agent)\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "    wf.add_node(\"step_%d\", agent_step_%d)\n", i, i)
	}
	b.WriteString("    wf.set_entry_point(\"file_agent\")\n")
	if n == 0 {
		b.WriteString("    wf.add_edge(\"file_agent\", END)\n")
	} else {
		b.WriteString("    wf.add_edge(\"file_agent\", \"step_1\")\n")
		for i := 1; i < n; i++ {
			fmt.Fprintf(&b, "    wf.add_edge(\"step_%d\", \"step_%d\")\n", i, i+1)
		}
		fmt.Fprintf(&b, "    wf.add_edge(\"step_%d\", END)\n", n)
	}
	b.WriteString("    return wf.compile()\n")

	b.WriteString("\nif __name__ == \"__main__\":\n")
	b.WriteString("    state = AgentState(\n")
	b.WriteString("        user_input=\"<<< PUT USER INPUT HERE >>>\",\n")
	fmt.Fprintf(&b, "        follow_up_answers=%s,\n", pyDict(answers))
	b.WriteString("        validation_messages=[],\n")
	b.WriteString("        error_occurred=False,\n")
	b.WriteString("        files={}")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, ", step_%d_result=None", i)
	}
	b.WriteString("\n    )\n")
	b.WriteString("    wf = create_workflow()\n")
	b.WriteString("    result = wf.invoke(state)\n")
	b.WriteString("    print(\"\\n=== Workflow Finished ===\")\n")
	b.WriteString("    for msg in result.get(\"validation_messages\", []):\n")
	b.WriteString("        print(msg)\n")
	fmt.Fprintf(&b, "    for i in range(%d):\n", n)
	b.WriteString("        print(f\"Step {i+1} result:\", result.get(f\"step_{i+1}_result\"))\n")

	return b.String()
}

// writeStepFunction emits one agent_step_N routine. Step 1 reads the raw
// user input; later steps read the previous step's result. Requirements come
// from follow_up_answers keyed by the subtask's literal text.
func writeStepFunction(b *strings.Builder, i, total int, subtask, goal string) {
	input := "user_input"
	if i > 1 {
		input = fmt.Sprintf("step_%d_result", i-1)
	}

	fmt.Fprintf(b, "\ndef agent_step_%d(state: AgentState) -> AgentState:\n", i)
	fmt.Fprintf(b, "    \"\"\"Handles: %s\"\"\"\n", subtask)
	b.WriteString("    messages = state.get(\"validation_messages\", [])\n")
	b.WriteString("    try:\n")
	fmt.Fprintf(b, "        input_data = state.get(\"%s\", \"\")\n", input)
	b.WriteString("        files = state.get(\"files\", {})\n")
	b.WriteString("        prompt = f\"\"\"\n")
	fmt.Fprintf(b, "        Subtask: %s\n", subtask)
	fmt.Fprintf(b, "        Overall Goal: %s\n", goal)
	fmt.Fprintf(b, "        Step %d/%d\n", i, total)
	b.WriteString("        Input: {input_data}\n")
	b.WriteString("        Files Available: {list(files.keys())}\n")
	fmt.Fprintf(b, "        Requirements: {state.get(\"follow_up_answers\", {}).get(%s, \"No specific requirements\")}\n", pyStr(subtask))
	b.WriteString("        \"\"\"\n")
	b.WriteString("        result = llm_invoke(prompt)\n")
	fmt.Fprintf(b, "        messages.append(%s)\n", pyStr(fmt.Sprintf("Step %d done: %s", i, subtask)))
	fmt.Fprintf(b, "        return {**state, \"step_%d_result\": result, \"validation_messages\": messages}\n", i)
	b.WriteString("    except Exception as e:\n")
	fmt.Fprintf(b, "        messages.append(f\"Error in step %d: {e}\")\n", i)
	b.WriteString("        return {**state, \"error_occurred\": True, \"validation_messages\": messages}\n")
}

// pyDict renders a Python dict literal with keys in sorted order so the
// emitted program is stable across runs.
func pyDict(m map[string]string) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := sortedKeys(m)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, pyStr(k)+": "+pyStr(m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// pyStr quotes a Go string as a Python string literal. Go's double-quoted
// escaping is a compatible subset of Python's.
func pyStr(s string) string {
	return strconv.Quote(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
