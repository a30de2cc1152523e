package form

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

// mockGateway only implements the existence check meaningfully; the form
// never calls anything else.
type mockGateway struct {
	mu        sync.Mutex
	existing  map[string]bool
	existsErr error
	calls     []string
	responses chan bool // when non-nil, each call blocks until fed a result
}

func (m *mockGateway) ExistsByID(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	m.calls = append(m.calls, id)
	responses := m.responses
	m.mu.Unlock()

	if responses != nil {
		return <-responses, nil
	}
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.existing[id], nil
}

func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockGateway) calledWith() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockGateway) List(ctx context.Context) ([]domproduct.FinancialProduct, error) {
	return nil, nil
}

func (m *mockGateway) GetByID(ctx context.Context, id string) (*domproduct.FinancialProduct, error) {
	return nil, domproduct.ErrProductNotFound
}

func (m *mockGateway) Create(ctx context.Context, p domproduct.FinancialProduct) (*domproduct.MutationResult, error) {
	return &domproduct.MutationResult{}, nil
}

func (m *mockGateway) Update(ctx context.Context, p domproduct.FinancialProduct, id string) (*domproduct.MutationResult, error) {
	return &domproduct.MutationResult{}, nil
}

func (m *mockGateway) Delete(ctx context.Context, id string) error { return nil }

var fixedNow = func() time.Time {
	return time.Date(2025, time.June, 10, 15, 4, 5, 0, time.UTC)
}

func newTestForm(t *testing.T, mode Mode, gw *mockGateway) *Form {
	t.Helper()
	f := New(Config{
		Mode:           mode,
		Gateway:        gw,
		Now:            fixedNow,
		DebounceWindow: 20 * time.Millisecond,
	})
	t.Cleanup(f.Close)
	return f
}

func fillValid(f *Form) {
	f.SetValue(FieldID, "abc")
	f.SetValue(FieldName, "Valid Name Ok")
	f.SetValue(FieldDescription, "Ten chars minimum!")
	f.SetValue(FieldLogo, "x.png")
	f.SetValue(FieldDateRelease, "2025-06-10")
}

func TestSyncRules(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr string
	}{
		{
			name:    "ID empty",
			field:   FieldID,
			value:   "",
			wantErr: "this field is required",
		},
		{
			name:    "ID too short",
			field:   FieldID,
			value:   "ab",
			wantErr: "must be at least 3 characters",
		},
		{
			name:    "ID too long",
			field:   FieldID,
			value:   "abcdefghijk",
			wantErr: "must be at most 10 characters",
		},
		{
			name:    "Name too short",
			field:   FieldName,
			value:   "abcd",
			wantErr: "must be at least 5 characters",
		},
		{
			name:    "Description too short",
			field:   FieldDescription,
			value:   "nine char",
			wantErr: "must be at least 10 characters",
		},
		{
			name:    "Logo empty",
			field:   FieldLogo,
			value:   "",
			wantErr: "this field is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForm(t, ModeCreate, &mockGateway{})
			f.SetValue(tt.field, tt.value)
			require.Contains(t, f.Field(tt.field).Errors, tt.wantErr)
			require.False(t, f.Valid())
		})
	}
}

func TestSyncRules_BoundaryLengthsPass(t *testing.T) {
	f := newTestForm(t, ModeCreate, &mockGateway{})

	f.SetValue(FieldID, "abc")
	require.Empty(t, f.Field(FieldID).Errors)

	f.SetValue(FieldID, "abcdefghij")
	require.Empty(t, f.Field(FieldID).Errors)

	f.SetValue(FieldName, "abcde")
	require.Empty(t, f.Field(FieldName).Errors)

	f.SetValue(FieldDescription, "exactly 10")
	require.Empty(t, f.Field(FieldDescription).Errors)
}

func TestDateRule(t *testing.T) {
	tests := []struct {
		name         string
		release      string
		wantRevision string
		wantErr      string
	}{
		{
			name:         "Today derives one year later",
			release:      "2025-06-10",
			wantRevision: "2026-06-10",
		},
		{
			name:         "Future date derives one year later",
			release:      "2025-12-31",
			wantRevision: "2026-12-31",
		},
		{
			name:    "Yesterday is rejected and revision cleared",
			release: "2025-06-09",
			wantErr: "release date must be today or later",
		},
		{
			name:    "Far past is rejected",
			release: "2020-01-01",
			wantErr: "release date must be today or later",
		},
		{
			name:    "Garbage clears revision",
			release: "not-a-date",
			wantErr: "must be a date in YYYY-MM-DD form",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForm(t, ModeCreate, &mockGateway{})
			f.SetValue(FieldDateRelease, tt.release)

			if tt.wantErr != "" {
				require.Contains(t, f.Field(FieldDateRelease).Errors, tt.wantErr)
				require.Empty(t, f.Field(FieldDateRevision).Value)
				return
			}
			require.NotContains(t, f.Field(FieldDateRelease).Errors, "release date must be today or later")
			require.Equal(t, tt.wantRevision, f.Field(FieldDateRevision).Value)
		})
	}
}

func TestDateRule_ClearingReleaseClearsRevision(t *testing.T) {
	f := newTestForm(t, ModeCreate, &mockGateway{})

	f.SetValue(FieldDateRelease, "2025-06-10")
	require.Equal(t, "2026-06-10", f.Field(FieldDateRevision).Value)

	f.SetValue(FieldDateRelease, "")
	require.Empty(t, f.Field(FieldDateRevision).Value)
}

func TestDateRule_Idempotent(t *testing.T) {
	f := newTestForm(t, ModeCreate, &mockGateway{})

	f.SetValue(FieldDateRelease, "2025-06-10")
	first := f.Field(FieldDateRevision).Value

	// Unrelated edits re-run the rule on the already-derived value.
	f.SetValue(FieldName, "Valid Name Ok")
	f.SetValue(FieldLogo, "x.png")
	require.Equal(t, first, f.Field(FieldDateRevision).Value)
}

func TestDateRule_RevisionNotUserEditable(t *testing.T) {
	f := newTestForm(t, ModeCreate, &mockGateway{})

	f.SetValue(FieldDateRelease, "2025-06-10")
	f.SetValue(FieldDateRevision, "2030-01-01")
	require.Equal(t, "2026-06-10", f.Field(FieldDateRevision).Value)
	require.True(t, f.Field(FieldDateRevision).Disabled)
}

func TestUniqueness_ShortInputNeverCallsGateway(t *testing.T) {
	gw := &mockGateway{}
	f := newTestForm(t, ModeCreate, gw)

	f.SetValue(FieldID, "a")
	f.SetValue(FieldID, "ab")
	f.SetValue(FieldID, "  ab  ")

	time.Sleep(60 * time.Millisecond)
	require.Zero(t, gw.callCount())
	require.Empty(t, f.Field(FieldID).AsyncError)
	require.False(t, f.Pending())
}

func TestUniqueness_RapidEditsCheckFinalValueOnce(t *testing.T) {
	gw := &mockGateway{existing: map[string]bool{}}
	f := newTestForm(t, ModeCreate, gw)

	f.SetValue(FieldID, "abc")
	f.SetValue(FieldID, "abcd")
	f.SetValue(FieldID, "abcde")

	require.Eventually(t, func() bool {
		return !f.Pending()
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, []string{"abcde"}, gw.calledWith())
	require.Empty(t, f.Field(FieldID).AsyncError)
}

func TestUniqueness_ExistingIDErrors(t *testing.T) {
	gw := &mockGateway{existing: map[string]bool{"abc": true}}
	f := newTestForm(t, ModeCreate, gw)

	f.SetValue(FieldID, "abc")

	require.Eventually(t, func() bool {
		return f.Field(FieldID).AsyncError == "id already exists"
	}, time.Second, 5*time.Millisecond)
	require.False(t, f.Valid())
}

func TestUniqueness_TransportFailureFailsOpen(t *testing.T) {
	gw := &mockGateway{existsErr: context.DeadlineExceeded}
	f := newTestForm(t, ModeCreate, gw)

	f.SetValue(FieldID, "abc")
	require.Eventually(t, func() bool {
		return !f.Pending()
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, 1, gw.callCount())
	require.Empty(t, f.Field(FieldID).AsyncError)
}

func TestUniqueness_StaleInFlightResultDiscarded(t *testing.T) {
	gw := &mockGateway{responses: make(chan bool)}
	f := newTestForm(t, ModeCreate, gw)

	f.SetValue(FieldID, "aaa")
	require.Eventually(t, func() bool {
		return gw.callCount() == 1
	}, time.Second, time.Millisecond, "first check should reach the gateway")

	// Supersede the value while the first request is still in flight.
	f.SetValue(FieldID, "bbb")

	// The stale request resolves "exists" and must be thrown away.
	gw.responses <- true

	require.Eventually(t, func() bool {
		return gw.callCount() == 2
	}, time.Second, time.Millisecond)
	gw.responses <- false

	require.Eventually(t, func() bool {
		return !f.Pending()
	}, time.Second, time.Millisecond)

	require.Equal(t, []string{"aaa", "bbb"}, gw.calledWith())
	require.Empty(t, f.Field(FieldID).AsyncError, "stale exists=true result must not flash an error")
}

func TestUniqueness_CloseCancelsPendingCheck(t *testing.T) {
	gw := &mockGateway{}
	f := New(Config{
		Mode:           ModeCreate,
		Gateway:        gw,
		Now:            fixedNow,
		DebounceWindow: 30 * time.Millisecond,
	})

	f.SetValue(FieldID, "abc")
	f.Close()

	time.Sleep(80 * time.Millisecond)
	require.Zero(t, gw.callCount())
	require.False(t, f.Pending())
}

func TestUniqueness_InactiveInEditMode(t *testing.T) {
	gw := &mockGateway{existing: map[string]bool{"abc": true}}
	f := newTestForm(t, ModeEdit, gw)
	f.SetInitial(&domproduct.FinancialProduct{
		ID:           "abc",
		Name:         "Cuenta corriente",
		Description:  "Cuenta sin costo de apertura",
		Logo:         "logo.png",
		DateRelease:  domproduct.NewDate(2025, time.July, 1),
		DateRevision: domproduct.NewDate(2026, time.July, 1),
	})

	f.SetValue(FieldID, "zzz")

	time.Sleep(60 * time.Millisecond)
	require.Zero(t, gw.callCount())
	require.Equal(t, "abc", f.Field(FieldID).Value, "id writes are ignored in edit mode")
	require.True(t, f.Field(FieldID).Disabled)
}

func TestValid_PendingCheckBlocksValidity(t *testing.T) {
	gw := &mockGateway{responses: make(chan bool)}
	f := newTestForm(t, ModeCreate, gw)

	fillValid(f)
	require.False(t, f.Valid(), "pending uniqueness check blocks validity")
	require.True(t, f.Pending())

	require.Eventually(t, func() bool {
		return gw.callCount() == 1
	}, time.Second, time.Millisecond)
	gw.responses <- false

	require.Eventually(t, f.Valid, time.Second, time.Millisecond)
}

func TestValues_IncludesDerivedRevision(t *testing.T) {
	gw := &mockGateway{}
	f := newTestForm(t, ModeCreate, gw)
	fillValid(f)

	v := f.Values()
	require.Equal(t, "abc", v.ID)
	require.Equal(t, "2025-06-10", v.DateRelease.String())
	require.Equal(t, "2026-06-10", v.DateRevision.String())
}

func TestMarkAllTouched(t *testing.T) {
	f := newTestForm(t, ModeCreate, &mockGateway{})
	f.MarkAllTouched()
	for _, field := range Fields {
		require.True(t, f.Field(field).Touched)
	}
}

func TestReset_CreateModeBlanksEverything(t *testing.T) {
	f := newTestForm(t, ModeCreate, &mockGateway{})
	fillValid(f)

	f.Reset()

	for _, field := range Fields {
		state := f.Field(field)
		require.Empty(t, state.Value)
		require.False(t, state.Touched)
		require.False(t, state.Dirty)
	}
	require.False(t, f.Valid(), "blank form fails the required rules")
}

func TestReset_EditModeKeepsDisabledID(t *testing.T) {
	f := newTestForm(t, ModeEdit, &mockGateway{})
	f.SetInitial(&domproduct.FinancialProduct{
		ID:          "abc",
		Name:        "Cuenta corriente",
		Description: "Cuenta sin costo de apertura",
		Logo:        "logo.png",
	})
	f.SetValue(FieldName, "Something else entirely")

	f.Reset()

	id := f.Field(FieldID)
	require.Equal(t, "abc", id.Value)
	require.True(t, id.Disabled)
	require.Empty(t, f.Field(FieldName).Value)
}
