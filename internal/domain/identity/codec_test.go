package identity

import "testing"

func TestEncodeDecodeLinks(t *testing.T) {
	links := []PlayerLink{
		{
			ID: "john-smith-abc",
			LinkedPlayers: []LinkedPlayerEntry{
				{LeagueID: "wrexham", PlayerID: "John Smith", Confidence: 1.0},
				{LeagueID: "chester", PlayerID: "John Smith", Confidence: 0.95},
			},
			CreatedAt: 1000,
			UpdatedAt: 2000,
		},
	}

	data, err := EncodeLinks(links)
	if err != nil {
		t.Fatalf("encode links: %v", err)
	}

	got, err := DecodeLinks(data)
	if err != nil {
		t.Fatalf("decode links: %v", err)
	}
	if len(got) != 1 || got[0].ID != "john-smith-abc" {
		t.Fatalf("unexpected decode result: %+v", got)
	}
	if len(got[0].LinkedPlayers) != 2 || got[0].LinkedPlayers[1].Confidence != 0.95 {
		t.Fatalf("entries did not round-trip: %+v", got[0].LinkedPlayers)
	}
}

func TestDecodeLinks_RejectsMalformedDocuments(t *testing.T) {
	if _, err := DecodeLinks([]byte(`{not json`)); err == nil {
		t.Fatal("expected decode error for malformed JSON")
	}

	// Well-formed JSON carrying an out-of-range confidence fails validation.
	doc := `[{"id":"x","linked_players":[{"league_id":"wrexham","player_id":"John Smith","confidence":1.5}],"created_at":1,"updated_at":2}]`
	if _, err := DecodeLinks([]byte(doc)); err == nil {
		t.Fatal("expected validation error for out-of-range confidence")
	}
}
