package handoff

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDirectory(t *testing.T) {
	d := DefaultDirectory()
	require.Len(t, d, 4)
	assert.Equal(t, "Priya Sharma (HR)", d[0].Label())
	assert.Equal(t, "kabir.counsellor@example.com", d[3].Email)
}

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Priya Sharma", "Priya"},
		{"Dr. Ananya Jain", "Ananya"},
		{"Madonna", "Madonna"},
		{"Dr.", "Dr."},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Contact{Name: tt.name}.FirstName(), "name %q", tt.name)
	}
}

func TestFind(t *testing.T) {
	d := DefaultDirectory()

	c, ok := d.Find("Rahul Mehta")
	require.True(t, ok)
	assert.Equal(t, "rahul.hr@example.com", c.Email)

	c, ok = d.Find("Dr. Kabir Das (Counsellor)")
	require.True(t, ok)
	assert.Equal(t, "kabir.counsellor@example.com", c.Email)

	_, ok = d.Find("Nobody")
	assert.False(t, ok)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`contacts:
  - name: Sam Lee
    email: sam@example.com
    role: HR
  - name: Dr. Ada Byron
    email: ada@example.com
`), 0o644))

	d, err := LoadDirectory(path)
	require.NoError(t, err)
	require.Len(t, d, 2)
	assert.Equal(t, "Sam Lee (HR)", d[0].Label())
	assert.Equal(t, "Dr. Ada Byron", d[1].Label())
}

func TestLoadDirectoryErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDirectory(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("contacts: []\n"), 0o644))
	_, err = LoadDirectory(empty)
	assert.ErrorContains(t, err, "no contacts")

	noEmail := filepath.Join(dir, "noemail.yaml")
	require.NoError(t, os.WriteFile(noEmail, []byte("contacts:\n  - name: X\n"), 0o644))
	_, err = LoadDirectory(noEmail)
	assert.ErrorContains(t, err, "required")
}

func TestCompose(t *testing.T) {
	c, _ := DefaultDirectory().Find("Priya Sharma")
	msg := Compose(c)

	assert.Equal(t, "priya.hr@example.com", msg.To)
	assert.Equal(t, "Burnout Alert: Employee Unfit to Work", msg.Subject)
	assert.True(t, strings.HasPrefix(msg.Body, "Hi Priya,\n\n"))
	assert.Contains(t, msg.Body, "flagged unfit to work 3 times")
	assert.True(t, strings.HasSuffix(msg.Body, "Regards,\nBurnout Tracker"))

	require.True(t, strings.HasPrefix(msg.MailTo, "mailto:priya.hr@example.com?"))
	assert.NotContains(t, msg.MailTo, "+")

	u, err := url.Parse(msg.MailTo)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, msg.Subject, q.Get("subject"))
	assert.Equal(t, msg.Body, q.Get("body"))
}

type recordingNotifier struct {
	alerts []Alert
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, a Alert) error {
	r.alerts = append(r.alerts, a)
	return r.err
}

func TestMultiNotifier(t *testing.T) {
	ok := &recordingNotifier{}
	failing := &recordingNotifier{err: errors.New("down")}

	alert := NewAlert("alice", DefaultDirectory())
	err := Multi{LogNotifier{}, failing, ok}.Notify(context.Background(), alert)

	assert.ErrorContains(t, err, "down")
	require.Len(t, ok.alerts, 1)
	assert.Equal(t, alert.ID, ok.alerts[0].ID)
	assert.Equal(t, "alice", ok.alerts[0].Actor)
	assert.NotEmpty(t, alert.ID)
	assert.False(t, alert.FiredAt.IsZero())
}
