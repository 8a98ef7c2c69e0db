package view

// Render replaces the cards of c with one card per item, in input order.
// Zero items leave c empty; callers add their own empty messaging.
func Render[T any](c *Container, items []T, toCard func(T) Card) {
	c.Clear()
	for _, item := range items {
		c.Append(toCard(item))
	}
}

// Empty replaces the cards of c with a single message card.
func Empty(c *Container, message string) {
	c.Clear()
	c.Append(Card{Key: "empty", Lines: []string{message}})
}

// Message returns the text of c when it holds only an Empty card.
func Message(c *Container) (string, bool) {
	if len(c.Cards) != 1 || c.Cards[0].Key != "empty" || len(c.Cards[0].Lines) == 0 {
		return "", false
	}
	return c.Cards[0].Lines[0], true
}
