package game

// Card is one on-board instance of a Character. Two cards in a deck share
// the same Character.ID; PositionID is unique within the deck and is how
// every transition refers to a card.
type Card struct {
	Character
	PositionID int `json:"position_id"`
}

// BuildDeck pairs up the daily characters and shuffles their on-screen
// order. Position ids are assigned over the concatenated pre-shuffle order
// (first copies get 0..k-1, second copies k..2k-1), so they stay unique no
// matter where the shuffle lands each card.
func BuildDeck(daily []Character) []Card {
	deck := make([]Card, 0, 2*len(daily))
	for copyRound := 0; copyRound < 2; copyRound++ {
		for i, c := range daily {
			deck = append(deck, Card{
				Character:  c,
				PositionID: copyRound*len(daily) + i,
			})
		}
	}
	return Shuffle(deck)
}
