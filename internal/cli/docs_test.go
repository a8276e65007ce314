package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"strata-cli/internal/docs"
	"strata-cli/internal/store"
)

func TestDocs_ListsTopics(t *testing.T) {
	t.Parallel()

	path := seedDB(t, t.TempDir(), &store.DB{})

	out, _, err := runCLI(t, "--db", path, "docs")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	for _, topic := range []string{"due-dates", "hierarchy", "projects", "workflow"} {
		if !strings.Contains(out, topic) {
			t.Fatalf("topic %q missing:\n%s", topic, out)
		}
	}

	out, _, err = runCLI(t, "--db", path, "docs", "--json")
	if err != nil {
		t.Fatalf("docs --json: %v", err)
	}
	var topics []docs.Topic
	if err := json.Unmarshal([]byte(out), &topics); err != nil {
		t.Fatalf("unmarshal: %v\nout:\n%s", err, out)
	}
	if len(topics) != 4 {
		t.Fatalf("expected 4 topics, got %+v", topics)
	}
}

func TestDocs_ShowsTopicBody(t *testing.T) {
	t.Parallel()

	path := seedDB(t, t.TempDir(), &store.DB{})

	out, _, err := runCLI(t, "--db", path, "docs", "hierarchy")
	if err != nil {
		t.Fatalf("docs hierarchy: %v", err)
	}
	if !strings.Contains(out, "# ") || !strings.Contains(out, "Product") {
		t.Fatalf("guide body missing:\n%s", out)
	}

	// Topic lookup is case-insensitive.
	if _, _, err := runCLI(t, "--db", path, "docs", "Hierarchy"); err != nil {
		t.Fatalf("docs Hierarchy: %v", err)
	}

	_, errOut, err := runCLI(t, "--db", path, "docs", "nope")
	if err == nil {
		t.Fatal("expected unknown-topic error")
	}
	if !strings.Contains(errOut, "Unknown topic 'nope'. Run 'strata docs' to list topics.") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}
