package corpus

import (
	"github.com/google/uuid"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// GraphID returns the graph's ::id metadata value, minting a random ID when
// the corpus did not carry one, so store keys and report rows are always
// addressable.
func GraphID(g *amr.Graph) string {
	if id := g.ID(); id != "" {
		return id
	}
	return uuid.NewString()
}
