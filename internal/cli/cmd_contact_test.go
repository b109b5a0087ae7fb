package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolodex-cli/rolodex/internal/contact"
)

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	out, err := runCLI(t, "", &fakeRepository{}, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version=1.2.3")
	require.Contains(t, out, "commit=abc123")
	require.Contains(t, out, "build_time=2026-08-24T00:00:00Z")
}

func TestVersionCommandOutputsJSON(t *testing.T) {
	out, err := runCLI(t, "", &fakeRepository{}, "version", "--json")
	require.NoError(t, err)

	var payload BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "1.2.3", payload.Version)
	require.Equal(t, "abc123", payload.Commit)
}

func TestRootHasExpectedCommandsAndFlags(t *testing.T) {
	cmd := NewRootCommand(os.Stdin, os.Stdout, testBuildInfo())

	for _, name := range []string{"config", "json", "verbose"} {
		require.NotNilf(t, cmd.PersistentFlags().Lookup(name), "missing flag %q", name)
	}
	for _, name := range []string{"add", "ls", "find", "update-phone", "rm", "import", "browse", "version"} {
		_, _, err := cmd.Find([]string{name})
		require.NoErrorf(t, err, "expected command %q", name)
	}
}

func TestAddNormalizesPhoneAndPrintsID(t *testing.T) {
	repo := &fakeRepository{}
	out, err := runCLI(t, "", repo, "add", "--name", "Alice Johnson", "--email", "alice@example.com", "--phone", "4155550101")
	require.NoError(t, err)
	require.Contains(t, out, "Added contact Alice Johnson (id 1)")
	require.Len(t, repo.contacts, 1)
	require.Equal(t, "+1-415-555-0101", repo.contacts[0].Phone)
}

func TestAddRequiresNameAndEmail(t *testing.T) {
	_, err := runCLI(t, "", &fakeRepository{}, "add", "--email", "alice@example.com")
	require.Error(t, err)
	require.Equal(t, ExitCodeUsage, exitCode(err))

	_, err = runCLI(t, "", &fakeRepository{}, "add", "--name", "Alice")
	require.Error(t, err)
	require.Equal(t, ExitCodeUsage, exitCode(err))
}

func TestAddDuplicateEmailExitsDuplicate(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
	}}
	_, err := runCLI(t, "", repo, "add", "--name", "Other Alice", "--email", "alice@example.com")
	require.Error(t, err)
	require.Equal(t, ExitCodeDuplicate, exitCode(err))
}

func TestListPrintsContacts(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
		{Name: "Bob", Email: "bob@example.com", Phone: "+1-212-555-0102"},
	}}
	out, err := runCLI(t, "", repo, "ls")
	require.NoError(t, err)
	require.Contains(t, out, "Alice <alice@example.com> +1-415-555-0101")
	require.Contains(t, out, "Bob <bob@example.com> +1-212-555-0102")
}

func TestListEmptyPrintsMessage(t *testing.T) {
	out, err := runCLI(t, "", &fakeRepository{}, "ls")
	require.NoError(t, err)
	require.Contains(t, out, "No contacts found")
}

func TestListJSONProducesValidArray(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
	}}
	out, err := runCLI(t, "", repo, "--json", "ls")
	require.NoError(t, err)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload, 1)
	require.Equal(t, "Alice", payload[0]["name"])
}

func TestListJSONEmptyIsEmptyArray(t *testing.T) {
	out, err := runCLI(t, "", &fakeRepository{}, "--json", "ls")
	require.NoError(t, err)
	require.JSONEq(t, "[]", out)
}

func TestFindByEmail(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
	}}
	out, err := runCLI(t, "", repo, "find", "email", "alice@example.com")
	require.NoError(t, err)
	require.Contains(t, out, "Alice <alice@example.com>")
}

func TestFindUnknownFieldIsUsageError(t *testing.T) {
	_, err := runCLI(t, "", &fakeRepository{}, "find", "phone", "+1-415-555-0101")
	require.Error(t, err)
	require.Equal(t, ExitCodeUsage, exitCode(err))
}

func TestFindMissingContactExitsNotFound(t *testing.T) {
	_, err := runCLI(t, "", &fakeRepository{}, "find", "name", "Nobody")
	require.Error(t, err)
	require.Equal(t, ExitCodeNotFound, exitCode(err))
}

func TestUpdatePhoneNormalizesBeforeWriting(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
	}}
	out, err := runCLI(t, "", repo, "update-phone", "email", "alice@example.com", "(212) 555-0102")
	require.NoError(t, err)
	require.Contains(t, out, `Updated phone for email "alice@example.com"`)
	require.Equal(t, "+1-212-555-0102", repo.contacts[0].Phone)
}

func TestUpdatePhoneZeroMatchesExitsNotFound(t *testing.T) {
	_, err := runCLI(t, "", &fakeRepository{}, "update-phone", "name", "Nobody", "4155550101")
	require.Error(t, err)
	require.Equal(t, ExitCodeNotFound, exitCode(err))
}

func TestRemoveWithYesFlagSkipsPrompt(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
	}}
	out, err := runCLI(t, "", repo, "rm", "--yes", "name", "Alice")
	require.NoError(t, err)
	require.Contains(t, out, `Deleted contact with name "Alice"`)
	require.Empty(t, repo.contacts)
}

func TestRemovePromptAcceptsY(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
	}}
	out, err := runCLI(t, "y\n", repo, "rm", "email", "alice@example.com")
	require.NoError(t, err)
	require.Contains(t, out, "Are you sure you want to delete contact with email 'alice@example.com'? (y/n): ")
	require.Empty(t, repo.contacts)
}

func TestRemoveAnyOtherAnswerCancels(t *testing.T) {
	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1-415-555-0101"},
	}}
	out, err := runCLI(t, "no\n", repo, "rm", "name", "Alice")
	require.NoError(t, err)
	require.Contains(t, out, "Deletion cancelled")
	require.Len(t, repo.contacts, 1)
}

func TestImportReportsCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	doc := `{"contacts": [
		{"name": "Alice", "email": "alice@example.com", "phone": "4155550101"},
		{"name": "Bob", "email": "bob@example.com", "phone": "2125550102"},
		{"name": "", "email": "blank@example.com", "phone": "123"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	repo := &fakeRepository{contacts: []contact.Contact{
		{Name: "Old Bob", Email: "bob@example.com", Phone: "+1-212-555-0102"},
	}}
	out, err := runCLI(t, "", repo, "import", path)
	require.NoError(t, err)
	require.Contains(t, out, "Found 3 contacts in file")
	require.Contains(t, out, "Imported 1 contacts")
	require.Contains(t, out, "Skipped 1 duplicate contacts")
	require.Contains(t, out, "Skipped 1 invalid records")
	require.Len(t, repo.contacts, 2)
}

func TestImportMissingFileExitsIO(t *testing.T) {
	_, err := runCLI(t, "", &fakeRepository{}, "import", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	require.Equal(t, ExitCodeIO, exitCode(err))
}
