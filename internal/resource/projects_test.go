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

func TestProjects_LoadUsesArchivedQuery(t *testing.T) {
	fake := newFakeAPI(func(_, path string, _ []byte) (string, error) {
		switch path {
		case "/projects?archived=false":
			return `[{"id":1,"investor_id":3,"name":"Port Expansion"}]`, nil
		case "/projects?archived=true":
			return `[{"id":2,"investor_id":3,"name":"Old Mill","archived":true}]`, nil
		}
		return "", fmt.Errorf("unexpected path %s", path)
	})

	ctx := context.Background()
	s := NewProjects(fake)

	require.NoError(t, s.Reload(ctx))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "Port Expansion", s.Items()[0].Name)

	s.Filter = model.FilterArchived
	require.NoError(t, s.Reload(ctx))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "Old Mill", s.Items()[0].Name)
}

func TestProjects_SaveValidation(t *testing.T) {
	tests := []struct {
		name string
		form ProjectForm
	}{
		{name: "no investor", form: ProjectForm{Name: "Port Expansion"}},
		{name: "no name", form: ProjectForm{InvestorID: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI(respondWith(""))
			s := NewProjects(fake)
			s.Form = tt.form

			err := s.Save(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))
			assert.Empty(t, fake.calls)
		})
	}
}

func TestProjects_SaveCreateAndUpdate(t *testing.T) {
	fake := newFakeAPI(respondWith(""))
	s := NewProjects(fake)

	s.Form = ProjectForm{InvestorID: 3, Name: "Port Expansion", Sector: "Logistics"}
	require.NoError(t, s.Save(context.Background()))

	var sent ProjectForm
	require.NoError(t, json.Unmarshal(fake.bodies["POST /projects"], &sent))
	assert.Equal(t, 3, sent.InvestorID)
	assert.Equal(t, "Logistics", sent.Sector)

	s.Edit(model.Project{ID: 9, InvestorID: 3, Name: "Port Expansion", Status: "ongoing"})
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, []string{"POST /projects", "PUT /projects/9"}, fake.calls)
	assert.Equal(t, ProjectForm{}, s.Form)
}

func TestProjects_InvestorNameResolution(t *testing.T) {
	fake := newFakeAPI(func(_, path string, _ []byte) (string, error) {
		if path == "/investors" {
			return `{"data":[{"id":3,"name":"Acme","email":"a@acme.test"}]}`, nil
		}
		return "[]", nil
	})

	s := NewProjects(fake)
	require.NoError(t, s.LoadInvestorRefs(context.Background()))

	assert.Equal(t, "Acme", s.InvestorName(3))
	assert.Equal(t, "", s.InvestorName(99))
}

func TestProjects_ExportRowsJoinsInvestorName(t *testing.T) {
	s := NewProjects(newFakeAPI(respondWith("[]")))
	s.InvestorRefs = []model.Investor{{ID: 3, Name: "Acme"}}

	seq := s.NextSeq()
	s.Apply(LoadResult[model.Project]{Seq: seq, Items: []model.Project{
		{ID: 1, InvestorID: 3, Name: "Port Expansion", Sector: "Logistics", Location: "Pier 4", Status: "ongoing"},
	}})

	rows := s.ExportRows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "Acme", "Port Expansion", "Logistics", "", "Pier 4", "", "ongoing"}, rows[0])
}

func TestProjects_FilteredSearchesLocation(t *testing.T) {
	s := NewProjects(newFakeAPI(respondWith("[]")))
	seq := s.NextSeq()
	s.Apply(LoadResult[model.Project]{Seq: seq, Items: []model.Project{
		{ID: 1, Name: "Port Expansion", Location: "Pier 4"},
		{ID: 2, Name: "Agri Hub", Location: "North District"},
	}})

	s.Search = "pier"
	got := s.Filtered()
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	s.Search = ""
	s.SortField = ProjectSortSector
	assert.Len(t, s.Filtered(), 2)
}
