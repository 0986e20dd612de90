//go:build !short

package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/pipeline"
	"github.com/jonathan/job-autofill/internal/types"
)

// reactLikeForm swallows plain value assignment on the first name input,
// the way framework-controlled inputs do.
const reactLikeForm = `<!doctype html><html><head><title>Apply</title></head><body>
<form>
	<div><label for="e">Email</label><input id="e" type="email"></div>
	<div><label for="f">First Name</label><input id="f" name="first_name"></div>
	<div><label for="s">State</label><select id="s"><option value="">--</option><option value="TX">Texas</option></select></div>
</form>
<script>
	const f = document.getElementById("f");
	Object.defineProperty(f, "value", {
		get() { return Object.getOwnPropertyDescriptor(HTMLInputElement.prototype, "value").get.call(this); },
		set(v) {},
	});
</script>
</body></html>`

func TestSession_FillsLivePage(t *testing.T) {
	if os.Getenv("AUTOFILL_BROWSER_TESTS") == "" {
		t.Skip("AUTOFILL_BROWSER_TESTS not set, skipping browser integration test")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(reactLikeForm))
	}))
	defer server.Close()

	session, err := NewSession(context.Background(), Options{Settle: -1})
	require.NoError(t, err)
	defer session.Close()

	p, err := session.Open(server.URL)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, "Apply", p.Title())

	profile := &types.Profile{PersonalInfo: types.PersonalInfo{Email: "a@b.com", FirstName: "Ann", State: "texas"}}
	summary, err := pipeline.Fill(p, profile, pipeline.Options{Pace: -1, Highlight: true})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalLocated)
	assert.Equal(t, 3, summary.SucceededCount)

	html, err := p.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "data-autofill-key")
}
