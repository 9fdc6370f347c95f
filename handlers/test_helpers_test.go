package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"estimatebuilder/config"
	"estimatebuilder/services"
)

var testNow = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

// cycleReader repeats its bytes forever; {0,1,2,25,26,35} always yields
// estimate number EST-ABCZ09.
type cycleReader struct {
	data []byte
	pos  int
}

func (r *cycleReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.data[r.pos%len(r.data)]
		r.pos++
	}
	return len(p), nil
}

// newTestEnv returns an Env with a fixed clock and number source.
func newTestEnv(t *testing.T) *Env {
	t.Helper()
	env := NewEnv(config.Default())
	env.Now = func() time.Time { return testNow }
	env.Rand = &cycleReader{data: []byte{0, 1, 2, 25, 26, 35}}
	return env
}

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e
}

// newTestSession registers a session and attaches its cookie to req.
func newTestSession(t *testing.T, env *Env, req *http.Request) *Session {
	t.Helper()
	est, err := env.newEstimate()
	if err != nil {
		t.Fatalf("newEstimate() error = %v", err)
	}
	sess, err := env.Sessions.Create(est)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.ID})
	return sess
}

// seedItems adds materials to the session's estimate.
func seedItems(t *testing.T, sess *Session, inputs ...services.MaterialInput) {
	t.Helper()
	_ = sess.With(func(est *services.Estimate) error {
		for _, in := range inputs {
			item, err := services.NewMaterialItem(in)
			if err != nil {
				t.Fatalf("NewMaterialItem() error = %v", err)
			}
			est.AddItem(item)
		}
		return nil
	})
}

// snapshot returns a copy of the session's estimate.
func snapshot(sess *Session) services.Estimate {
	var cp services.Estimate
	_ = sess.With(func(est *services.Estimate) error {
		cp = *est
		cp.Items = append(services.Catalog{}, est.Items...)
		return nil
	})
	return cp
}

var romex = services.MaterialInput{
	Name:          "14/2 Romex Wire",
	Quantity:      100,
	Unit:          "ft",
	Price:         0.45,
	IsCable:       true,
	CableStandard: "Nexans",
}

var outlet = services.MaterialInput{Name: "Outlet", Quantity: 10, Unit: "pcs", Price: 2.5}
