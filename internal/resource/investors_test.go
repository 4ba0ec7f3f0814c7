package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

const investorFixture = `[
	{"id":1,"name":"Acme","email":"a@acme.test","company":"A Co","archived":0},
	{"id":2,"name":"Beta","email":"b@beta.test","company":"B Co","archived":1}
]`

func TestInvestors_LoadActiveFilter(t *testing.T) {
	s := NewInvestors(newFakeAPI(respondWith(investorFixture)))

	require.NoError(t, s.Reload(context.Background()))

	require.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.Items()[0].ID)
	assert.Equal(t, "Acme", s.Items()[0].Name)
}

func TestInvestors_LoadArchivedFilter(t *testing.T) {
	s := NewInvestors(newFakeAPI(respondWith(investorFixture)))
	s.Filter = model.FilterArchived

	require.NoError(t, s.Reload(context.Background()))

	require.Len(t, s.Items(), 1)
	assert.Equal(t, 2, s.Items()[0].ID)
}

func TestInvestors_LoadEnvelopeResponse(t *testing.T) {
	body := fmt.Sprintf(`{"data":%s}`, investorFixture)
	s := NewInvestors(newFakeAPI(respondWith(body)))

	require.NoError(t, s.Reload(context.Background()))
	assert.Len(t, s.Items(), 1)
}

func TestInvestors_LoadFailureEmptiesList(t *testing.T) {
	s := NewInvestors(newFakeAPI(respondWith(investorFixture)))
	require.NoError(t, s.Reload(context.Background()))
	require.Len(t, s.Items(), 1)

	s.client = failingAPI()
	err := s.Reload(context.Background())
	assert.Error(t, err)
	assert.Empty(t, s.Items())
}

func TestInvestors_SaveValidation(t *testing.T) {
	tests := []struct {
		name string
		form InvestorForm
	}{
		{name: "empty form", form: InvestorForm{}},
		{name: "missing email", form: InvestorForm{Name: "Acme"}},
		{name: "missing name", form: InvestorForm{Email: "a@acme.test"}},
		{name: "whitespace only", form: InvestorForm{Name: "  ", Email: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI(respondWith(""))
			s := NewInvestors(fake)
			s.Form = tt.form

			err := s.Save(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))

			// The precondition fails before any network call.
			assert.Empty(t, fake.calls)
			// Form state is preserved for retry.
			assert.Equal(t, tt.form, s.Form)
		})
	}
}

func TestInvestors_SaveCreate(t *testing.T) {
	fake := newFakeAPI(respondWith(""))
	s := NewInvestors(fake)
	s.Form = InvestorForm{Name: "Acme", Email: "a@acme.test", Company: "A Co"}

	require.NoError(t, s.Save(context.Background()))

	require.Equal(t, []string{"POST /investors"}, fake.calls)

	var sent InvestorForm
	require.NoError(t, json.Unmarshal(fake.bodies["POST /investors"], &sent))
	assert.Equal(t, "Acme", sent.Name)
	assert.Equal(t, "a@acme.test", sent.Email)

	// Success clears the form and editing state.
	assert.Equal(t, InvestorForm{}, s.Form)
	assert.Zero(t, s.EditingID)
}

func TestInvestors_SaveUpdate(t *testing.T) {
	fake := newFakeAPI(respondWith(""))
	s := NewInvestors(fake)
	s.Edit(model.Investor{ID: 7, Name: "Acme", Email: "a@acme.test", Phone: "123", Investment: "5000"})

	assert.Equal(t, 7, s.EditingID)
	assert.Equal(t, "Acme", s.Form.Name)
	assert.Equal(t, "5000", s.Form.Investment)

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, []string{"PUT /investors/7"}, fake.calls)
	assert.Zero(t, s.EditingID)
}

func TestInvestors_SaveNetworkFailureKeepsForm(t *testing.T) {
	s := NewInvestors(failingAPI())
	form := InvestorForm{Name: "Acme", Email: "a@acme.test"}
	s.Form = form

	err := s.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, form, s.Form)
}

func TestInvestors_ArchiveRestoreRoundTrip(t *testing.T) {
	// Stateful fake: archiving flips the flag the list endpoint serves.
	archived := map[int]bool{1: false}
	fake := newFakeAPI(func(method, path string, _ []byte) (string, error) {
		switch method + " " + path {
		case "POST /investors/1/archive":
			archived[1] = true
			return "", nil
		case "POST /investors/1/restore":
			archived[1] = false
			return "", nil
		case "GET /investors":
			flag := 0
			if archived[1] {
				flag = 1
			}
			return fmt.Sprintf(`[{"id":1,"name":"Acme","email":"a@acme.test","archived":%d}]`, flag), nil
		}
		return "", fmt.Errorf("unexpected request %s %s", method, path)
	})

	ctx := context.Background()
	s := NewInvestors(fake)

	require.NoError(t, s.Reload(ctx))
	require.Len(t, s.Items(), 1)

	// Archive, then re-fetch: gone from the active view.
	require.NoError(t, s.Archive(ctx, 1))
	require.NoError(t, s.Reload(ctx))
	assert.Empty(t, s.Items())

	// Present in the archived view.
	s.Filter = model.FilterArchived
	require.NoError(t, s.Reload(ctx))
	assert.Len(t, s.Items(), 1)

	// Restore returns it to the active view.
	require.NoError(t, s.Restore(ctx, 1))
	s.Filter = model.FilterActive
	require.NoError(t, s.Reload(ctx))
	assert.Len(t, s.Items(), 1)
}

func TestInvestors_Filtered(t *testing.T) {
	s := NewInvestors(newFakeAPI(respondWith("[]")))
	seq := s.NextSeq()
	s.Apply(LoadResult[model.Investor]{Seq: seq, Items: []model.Investor{
		{ID: 1, Name: "Zenith Holdings", Company: "Zenith"},
		{ID: 2, Name: "Acme", Company: "A Co"},
		{ID: 3, Name: "beta metals", Company: ""},
	}})

	t.Run("empty search keeps everything sorted by name", func(t *testing.T) {
		got := s.Filtered()
		require.Len(t, got, 3)
		assert.Equal(t, []int{2, 3, 1}, []int{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("search is case-insensitive on name", func(t *testing.T) {
		s.Search = "BETA"
		defer func() { s.Search = "" }()

		got := s.Filtered()
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("search matches secondary company field", func(t *testing.T) {
		s.Search = "a co"
		defer func() { s.Search = "" }()

		got := s.Filtered()
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].ID)
	})

	t.Run("missing sort values order as empty string", func(t *testing.T) {
		s.SortField = InvestorSortCompany
		defer func() { s.SortField = InvestorSortName }()

		got := s.Filtered()
		require.Len(t, got, 3)
		// Empty company sorts first.
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("filtered view is a subset of items", func(t *testing.T) {
		s.Search = "zen"
		defer func() { s.Search = "" }()

		for _, inv := range s.Filtered() {
			assert.Contains(t, s.Items(), inv)
		}
	})
}

func TestInvestors_ExportRows(t *testing.T) {
	s := NewInvestors(newFakeAPI(respondWith("[]")))
	seq := s.NextSeq()
	s.Apply(LoadResult[model.Investor]{Seq: seq, Items: []model.Investor{
		{ID: 2, Name: "Beta", Email: "b@beta.test", Company: "B Co", Investment: "100"},
		{ID: 1, Name: "Acme", Email: "a@acme.test", Phone: "555", Company: "A Co"},
	}})

	rows := s.ExportRows()
	require.Len(t, rows, 2)
	// Rows follow the sorted view, not arrival order.
	assert.Equal(t, []string{"1", "Acme", "a@acme.test", "555", "A Co", ""}, rows[0])
	assert.Equal(t, []string{"2", "Beta", "b@beta.test", "", "B Co", "100"}, rows[1])
}
