package checkout

import (
	"context"
	"log"
	"time"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/counter"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/api"
)

// Allocator obtains the next order number from the backend sequence. One
// attempt per call, no retry: checkout must never hang on the allocator, so
// any failure degrades to a locally synthesized ORD- number instead of
// surfacing an error. Two clients hitting the fallback in the same
// millisecond window can collide; that is an accepted degradation, and the
// prefix keeps such numbers recognisable to operators.
type Allocator struct {
	api *api.Client
}

func NewAllocator(client *api.Client) *Allocator {
	return &Allocator{api: client}
}

// Allocate returns a server-issued order number, or the timestamp fallback
// when the sequence is unreachable. It never fails.
func (a *Allocator) Allocate(ctx context.Context) string {
	number, err := a.api.GenerateOrderNumber(ctx)
	if err != nil {
		log.Println("⚠️ Order number allocation failed, falling back:", err)
		return counter.Fallback(time.Now())
	}
	return number
}
