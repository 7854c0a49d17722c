package protocol

import (
	"github.com/barnettsmart/mentalpoker/crypto/elgamal"
	"golang.org/x/sync/errgroup"
)

// RevealCard pairs a masked card with the reveal contributions needed to
// open it, the unit of work VerifyRevealTokensConcurrently fans out.
type RevealCard struct {
	M             elgamal.Ciphertext
	Contributions []RevealContribution
}

// VerifyRevealTokensConcurrently verifies the reveal-token proofs for
// multiple independent cards in parallel, fanning out across g (grounded on
// the teacher's errgroup.WithContext pattern in service/artifacts.go). Each
// card's own transcript and goroutine are independent; nothing here is
// shared mutable state, so callers may ignore this helper entirely and call
// VerifyReveal in a loop instead.
func VerifyRevealTokensConcurrently(g *errgroup.Group, pp PP, cards []RevealCard) {
	for _, rc := range cards {
		rc := rc
		g.Go(func() error {
			for _, c := range rc.Contributions {
				if err := VerifyReveal(pp, c.PK, rc.M, c.Token, c.Proof); err != nil {
					return err
				}
			}
			return nil
		})
	}
}
