package dietdesk_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/pkg/carousel"
	pkgerrors "github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
	"github.com/agentstation/dietdesk/pkg/logging"
	"github.com/agentstation/dietdesk/pkg/reconcile"
	"github.com/agentstation/dietdesk/pkg/records"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func algorithmic() *fields.Source {
	return fields.NewSource(
		fields.Entry{Name: "kcal", Value: 2000},
		fields.Entry{Name: "protein", Value: 100},
		fields.Entry{Name: "averageRating", Value: 4.2},
	)
}

func existing() *fields.Source {
	return fields.NewSource(
		fields.Entry{Name: "kcal", Value: 1800},
		fields.Entry{Name: "protein", Value: 90},
	)
}

func client(id string, surveys int) dietdesk.Client {
	c := dietdesk.Client{ID: id, Existing: existing(), Algorithmic: algorithmic()}
	for i := 1; i <= surveys; i++ {
		c.Surveys = append(c.Surveys, records.Survey{ID: id + "-s" + string(rune('0'+i)), ClientID: id, Date: day(i)})
	}
	c.BloodReports = []records.BloodReport{
		{ID: id + "-b1", Date: day(1)},
		{ID: id + "-b2", Date: day(2)},
	}
	return c
}

func newWorkspace(t *testing.T, opts ...dietdesk.Option) *dietdesk.Workspace {
	t.Helper()
	opts = append([]dietdesk.Option{dietdesk.WithLogger(logging.NewNopLogger())}, opts...)
	w, err := dietdesk.New(opts...)
	require.NoError(t, err)
	return w
}

func TestEndToEnd(t *testing.T) {
	var created []reconcile.Payload
	create := func(_ context.Context, p reconcile.Payload) error {
		created = append(created, p)
		return nil
	}
	w := newWorkspace(t, dietdesk.WithCreateFunc(create))

	var committedFor string
	w.OnCommitted(func(clientID string, _ reconcile.Payload) { committedFor = clientID })

	require.NoError(t, w.SelectClient(context.Background(), client("c1", 0)))
	assert.Equal(t, map[fields.Name]string{"kcal": "2000", "protein": "100"}, w.Working())

	assert.True(t, w.CopyField("kcal", fields.OriginExisting))
	assert.Equal(t, map[fields.Name]string{"kcal": "1800", "protein": "100"}, w.Working())
	assert.True(t, w.Dirty())

	pending, err := w.RequestCommit("My Plan")
	require.NoError(t, err)
	require.NoError(t, w.ConfirmCommit(context.Background(), pending))

	require.Len(t, created, 1)
	want := reconcile.Payload{Name: "My Plan", Values: map[fields.Name]*float64{"kcal": fields.Float(1800), "protein": fields.Float(100)}}
	if diff := cmp.Diff(want, created[0]); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "c1", committedFor)
	assert.Nil(t, w.Pending())
}

func TestConfirmWithoutCreateFunc(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, w.SelectClient(context.Background(), client("c1", 0)))
	pending, err := w.RequestCommit("Plan")
	require.NoError(t, err)

	err = w.ConfirmCommit(context.Background(), pending)
	var cfgErr *pkgerrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.NotNil(t, w.Pending(), "nothing was handed off")
}

func TestCommittedHookSkippedOnCreateFailure(t *testing.T) {
	boom := pkgerrors.New("server down")
	w := newWorkspace(t, dietdesk.WithCreateFunc(func(context.Context, reconcile.Payload) error { return boom }))
	called := false
	w.OnCommitted(func(string, reconcile.Payload) { called = true })

	require.NoError(t, w.SelectClient(context.Background(), client("c1", 0)))
	pending, err := w.RequestCommit("Plan")
	require.NoError(t, err)

	assert.ErrorIs(t, w.ConfirmCommit(context.Background(), pending), boom)
	assert.False(t, called)
	assert.Nil(t, w.Pending(), "pending is cleared whatever create returns")
}

func TestSelectClientResetsCarousels(t *testing.T) {
	w := newWorkspace(t)
	var selected []string
	w.OnClientSelected(func(c dietdesk.Client) { selected = append(selected, c.ID) })

	c1 := client("c1", 3)
	require.NoError(t, w.SelectClient(context.Background(), c1))

	s, pos, ok := w.CurrentSurvey()
	require.True(t, ok)
	assert.Equal(t, "c1-s3", s.ID, "newest first")
	assert.Equal(t, 1, pos.Index)
	assert.Equal(t, 3, pos.Total)
	assert.Equal(t, "c1-s1", c1.Surveys[0].ID, "caller slice untouched")

	w.NextSurvey()
	w.NextSurvey()
	w.NextBloodReport()
	_, pos, _ = w.CurrentSurvey()
	assert.Equal(t, 3, pos.Index)

	require.NoError(t, w.SelectClient(context.Background(), client("c2", 1)))
	s, pos, ok = w.CurrentSurvey()
	require.True(t, ok)
	assert.Equal(t, "c2-s1", s.ID)
	assert.Equal(t, 1, pos.Index)
	b, _, ok := w.CurrentBloodReport()
	require.True(t, ok)
	assert.Equal(t, "c2-b2", b.ID)

	assert.Equal(t, []string{"c1", "c2"}, selected)
}

func TestSelectClientDiscardsEdits(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, w.SelectClient(context.Background(), client("c1", 0)))
	require.NoError(t, w.SetField("kcal", "12."))
	_, err := w.RequestCommit("Plan")
	require.NoError(t, err)

	require.NoError(t, w.SelectClient(context.Background(), client("c2", 0)))
	assert.False(t, w.Dirty())
	assert.Nil(t, w.Pending())
}

func TestSelectClientCancelledContext(t *testing.T) {
	w := newWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.SelectClient(ctx, client("c1", 0)), context.Canceled)
}

func TestEmptyClient(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, w.SelectClient(context.Background(), dietdesk.Client{ID: "new"}))

	assert.Empty(t, w.Rows())
	assert.Equal(t, 0, w.CopyAll(fields.OriginExisting))
	w.NextSurvey()
	w.PreviousBloodReport()
	_, pos, ok := w.CurrentSurvey()
	assert.False(t, ok)
	assert.Zero(t, pos.Total)

	w.SetAlgorithmic(algorithmic())
	assert.Len(t, w.Rows(), 2)
	assert.Equal(t, 0, w.CopyAll(fields.OriginExisting), "no existing profile selected")

	w.SetExisting(existing())
	assert.Equal(t, 2, w.CopyAll(fields.OriginExisting))
}

func TestResolveWithConfiguredAuthority(t *testing.T) {
	w := newWorkspace(t)
	c := client("c1", 0)
	c.Algorithmic = fields.NewSource(
		fields.Entry{Name: "kcal", Value: 2000},
		fields.Entry{Name: "iron", Value: 14},
	)
	c.Existing = fields.NewSource(
		fields.Entry{Name: "kcal", Value: 1800},
		fields.Entry{Name: "iron", Value: 18},
	)
	require.NoError(t, w.SelectClient(context.Background(), c))

	assert.Equal(t, 1, w.ResolveWith(nil))
	assert.Equal(t, map[fields.Name]string{"kcal": "1800", "iron": "14"}, w.Working())

	history := w.Provenance()
	require.Len(t, history["kcal"], 2)
	assert.Equal(t, fields.OriginExisting, history["kcal"][1].Origin)
}

func TestPaging(t *testing.T) {
	w := newWorkspace(t, dietdesk.WithPageSize(2))
	require.NoError(t, w.SelectClient(context.Background(), client("c1", 5)))

	assert.Equal(t, dietdesk.PageInfo{Page: 1, Pages: 3, Total: 5}, w.SurveyPages())
	w.NextSurvey()
	w.NextSurvey()
	s, pos, _ := w.CurrentSurvey()
	assert.Equal(t, "c1-s5", s.ID, "wraps within the page")
	assert.Equal(t, 2, pos.Total)

	require.NoError(t, w.SurveyPage(3))
	s, pos, _ = w.CurrentSurvey()
	assert.Equal(t, "c1-s1", s.ID)
	assert.Equal(t, 1, pos.Total)

	require.NoError(t, w.SurveyPage(9))
	_, _, ok := w.CurrentSurvey()
	assert.False(t, ok)

	assert.True(t, pkgerrors.IsValidationError(w.SurveyPage(0)))
	assert.Equal(t, dietdesk.PageInfo{Page: 1, Pages: 1, Total: 2}, w.BloodReportPages())
	require.NoError(t, w.BloodReportPage(1))
}

func TestRefreshClampsCursor(t *testing.T) {
	w := newWorkspace(t)
	c := client("c1", 3)
	require.NoError(t, w.SelectClient(context.Background(), c))
	w.PreviousSurvey()
	_, pos, _ := w.CurrentSurvey()
	require.Equal(t, 3, pos.Index)

	w.RefreshSurveys(c.Surveys[:2])
	s, pos, ok := w.CurrentSurvey()
	require.True(t, ok)
	assert.Equal(t, 2, pos.Index)
	assert.Equal(t, 2, pos.Total)
	assert.Equal(t, "c1-s1", s.ID)

	w.RefreshBloodReports(nil)
	_, pos, ok = w.CurrentBloodReport()
	assert.False(t, ok)
	assert.Zero(t, pos.Index)
}

func TestRefreshFallsBackToLastPage(t *testing.T) {
	w := newWorkspace(t, dietdesk.WithPageSize(2))
	c := client("c1", 5)
	require.NoError(t, w.SelectClient(context.Background(), c))
	require.NoError(t, w.SurveyPage(3))

	w.RefreshSurveys(c.Surveys[:2])
	s, pos, ok := w.CurrentSurvey()
	require.True(t, ok)
	assert.Equal(t, "c1-s2", s.ID)
	assert.Equal(t, carousel.Position{Index: 1, Total: 2}, pos)
	assert.Equal(t, dietdesk.PageInfo{Page: 1, Pages: 1, Total: 2}, w.SurveyPages())

	w.RefreshSurveys(nil)
	_, _, ok = w.CurrentSurvey()
	assert.False(t, ok)
	assert.Equal(t, dietdesk.PageInfo{Page: 1, Pages: 0, Total: 0}, w.SurveyPages())
}

func TestOptionsValidation(t *testing.T) {
	_, err := dietdesk.New(dietdesk.WithLogger(nil))
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = dietdesk.New(dietdesk.WithPageSize(0))
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = dietdesk.New(dietdesk.WithAuthority(nil))
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = dietdesk.New(dietdesk.WithEngineOptions(reconcile.WithClock(nil)))
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestConcurrentUse(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, w.SelectClient(context.Background(), client("c0", 4)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				switch (i + j) % 5 {
				case 0:
					_ = w.SelectClient(context.Background(), client("c", 4))
				case 1:
					w.CopyAll(fields.OriginExisting)
				case 2:
					_ = w.SetField("protein", "120")
				case 3:
					w.NextSurvey()
				default:
					_ = w.Rows()
				}
			}
		}()
	}
	wg.Wait()

	working := w.Working()
	assert.Len(t, working, 2, "key set never changes")
	_, pos, ok := w.CurrentSurvey()
	require.True(t, ok)
	assert.GreaterOrEqual(t, pos.Index, 1)
	assert.LessOrEqual(t, pos.Index, pos.Total)
}
