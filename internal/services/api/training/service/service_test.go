package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"galaxy/internal/modkit/repokit/repotest"
	perr "galaxy/internal/platform/errors"
	ptime "galaxy/internal/platform/time"
	"galaxy/internal/services/api/training/domain"
	"galaxy/internal/services/api/training/repo"
)

func newSvc(db *repotest.DB) *Svc { return New(db.Resolver(), repo.NewPG(), time.Minute) }

func TestOrganisations(t *testing.T) {
	t.Parallel()

	db := repotest.New().On("training_organisations/organisations", []any{int64(4), "Kathmandu Living Labs"})
	got, err := newSvc(db).Organisations(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (domain.Organisation{ID: 4, Name: "Kathmandu Living Labs"}) {
		t.Fatalf("organisations = %+v", got)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	day := time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)
	db := repotest.New().On("trainings/trainings",
		[]any{int64(12), "JOSM basics", nil, "KLL", "inperson", "field", nil, int64(4), day})
	got, err := newSvc(db).List(context.Background(), domain.ListInput{
		FromDatestamp:  ptime.At(day.AddDate(0, -1, 0)),
		ToDatestamp:    ptime.At(day),
		OrganisationID: 4,
		TopicTypes:     []string{"field", "remote"},
		EventType:      "inperson",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Training{ID: 12, Name: "JOSM basics", Organization: "KLL", EventType: "inperson", TopicType: "field", Hours: 4, Date: "2021-03-02"}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("trainings = %+v", got)
	}
	sql := db.Calls()[0].SQL
	for _, frag := range []string{"t.organization = ", "t.topictype IN", "t.eventtype = ", "t.date >= ", "t.date <= "} {
		if !strings.Contains(sql, frag) {
			t.Fatalf("%q missing from %s", frag, sql)
		}
	}
}

func TestList_NoFilters(t *testing.T) {
	t.Parallel()

	db := repotest.New()
	got, err := newSvc(db).List(context.Background(), domain.ListInput{})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || strings.Contains(db.Calls()[0].SQL, "WHERE") {
		t.Fatalf("unfiltered list = %v, %s", got, db.Calls()[0].SQL)
	}
}

func TestList_Reversed(t *testing.T) {
	t.Parallel()

	day := time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := newSvc(repotest.New()).List(context.Background(), domain.ListInput{
		FromDatestamp: ptime.At(day),
		ToDatestamp:   ptime.At(day.AddDate(0, 0, -1)),
	})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
