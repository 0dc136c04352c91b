package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
)

func name(text, species, gender, setSlug string) models.Name {
	return models.Name{
		ID:      uuid.New(),
		Text:    text,
		Species: species,
		Gender:  gender,
		SetSlug: setSlug,
	}
}

func texts(names []models.Name) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.Text)
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	catalog := []models.Name{
		name("Fido", "dog", "male", "english-classic"),
		name("Rex", "dog", "male", "english-classic"),
		name("Bella", "any", "female", "english-cute"),
		name("Buddy", "dog", "neutral", "english-cute"),
		name("Whiskers", "cat", "neutral", "english-cute"),
	}

	tests := []struct {
		name   string
		filter models.Filter
		want   []string
	}{
		{
			name:   "zero filter matches everything",
			filter: models.Filter{},
			want:   []string{"Fido", "Rex", "Bella", "Buddy", "Whiskers"},
		},
		{
			name:   "species keeps wildcard names",
			filter: models.Filter{Species: "dog"},
			want:   []string{"Fido", "Rex", "Bella", "Buddy"},
		},
		{
			name:   "gender keeps neutral names",
			filter: models.Filter{Gender: "female"},
			want:   []string{"Bella", "Buddy", "Whiskers"},
		},
		{
			name:   "starts with is case insensitive",
			filter: models.Filter{StartsWith: "B"},
			want:   []string{"Bella", "Buddy"},
		},
		{
			name:   "length bounds",
			filter: models.Filter{MinLength: 4, MaxLength: 5},
			want:   []string{"Fido", "Bella", "Buddy"},
		},
		{
			name:   "set restriction",
			filter: models.Filter{Sets: []string{"english-classic"}},
			want:   []string{"Fido", "Rex"},
		},
		{
			name:   "combined criteria",
			filter: models.Filter{Species: "dog", StartsWith: "b", Sets: []string{"english-cute"}},
			want:   []string{"Bella", "Buddy"},
		},
		{
			name:   "any spellings mean unrestricted",
			filter: models.Filter{Species: "Any", Gender: "ANY"},
			want:   []string{"Fido", "Rex", "Bella", "Buddy", "Whiskers"},
		},
		{
			name:   "contradictory bounds yield empty not error",
			filter: models.Filter{MinLength: 6, MaxLength: 3},
			want:   nil,
		},
		{
			name:   "no survivors",
			filter: models.Filter{Species: "cat", StartsWith: "z"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(ApplyFilter(tt.filter, catalog))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v (order must follow catalog)", tt.want, got)
				}
			}
		})
	}
}

func TestApplyFilterSpeciesAndLength(t *testing.T) {
	catalog := []models.Name{
		name("Fido", "dog", "male", "s"),
		name("Rex", "dog", "male", "s"),
		name("Buddy", "dog", "neutral", "s"),
	}
	got := texts(ApplyFilter(models.Filter{Species: "dog", MinLength: 4}, catalog))
	want := []string{"Fido", "Buddy"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestApplyFilterPreservesCatalogOrder(t *testing.T) {
	catalog := []models.Name{
		name("Ziggy", "dog", "male", "s"),
		name("Arlo", "dog", "male", "s"),
		name("Milo", "dog", "male", "s"),
	}
	got := texts(ApplyFilter(models.Filter{Species: "dog"}, catalog))
	want := []string{"Ziggy", "Arlo", "Milo"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected catalog order %v, got %v", want, got)
		}
	}
}
