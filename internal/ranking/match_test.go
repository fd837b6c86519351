package ranking

import "testing"

func TestMatchesTrack(t *testing.T) {
	artists := []string{"Daft Punk", "Pharrell Williams"}

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{name: "all terms present", title: "Daft Punk - Get Lucky (Official Audio) ft. Pharrell Williams", want: true},
		{name: "case insensitive", title: "DAFT PUNK ft PHARRELL WILLIAMS - GET LUCKY", want: true},
		{name: "missing one artist", title: "Daft Punk - Get Lucky", want: false},
		{name: "missing track", title: "Daft Punk ft Pharrell Williams - Lose Yourself to Dance", want: false},
		{name: "8D audio rejected", title: "Daft Punk, Pharrell Williams - Get Lucky (8D Audio)", want: false},
		{name: "lowercase 16d rejected", title: "Daft Punk Pharrell Williams Get Lucky 16d", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesTrack(tt.title, artists, "Get Lucky"); got != tt.want {
				t.Errorf("MatchesTrack(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	if !ContainsFold("Beyoncé - Halo", "BEYONCÉ") {
		t.Error("expected folded match across accents in upper case")
	}
	if !ContainsAny("Vevo", []string{"nope", "VEVO"}) {
		t.Error("expected ContainsAny to match second needle")
	}
	if ContainsAny("Vevo", nil) {
		t.Error("expected ContainsAny with no needles to be false")
	}
	if !ContainsAll("anything", nil) {
		t.Error("expected ContainsAll with no needles to be true")
	}
}
