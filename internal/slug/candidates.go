package slug

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Candidates produces alternative slugs for a taken base, in the fixed order
// callers must probe them: base-1 through base-5, base plus a random
// three-digit suffix, base plus the current year. Candidates that would
// exceed MaxLength are dropped. No availability check happens here — the
// caller probes each candidate against the store.
func Candidates(base string) []string {
	out := make([]string, 0, 7)
	add := func(c string) {
		if len(c) <= MaxLength {
			out = append(out, c)
		}
	}

	for i := 1; i <= 5; i++ {
		add(fmt.Sprintf("%s-%d", base, i))
	}
	add(fmt.Sprintf("%s-%03d", base, rand.IntN(1000)))
	add(fmt.Sprintf("%s-%d", base, time.Now().Year()))

	return out
}
