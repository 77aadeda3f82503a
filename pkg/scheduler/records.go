package scheduler

import (
	"sync"
	"time"
)

// announcementRecords tracks which trains have been announced, per
// category, so a train is spoken about once per visit to the station.
//
// Marking cascades down the arrival sequence: a standing announcement also
// suppresses the approaching and next-train ones, and an approaching
// announcement suppresses the next-train one. Disruption announcements are
// tracked separately with a shorter lifetime so a worsening delay is
// re-announced.
type announcementRecords struct {
	mu sync.Mutex

	next        map[string]time.Time
	approaching map[string]time.Time
	standing    map[string]time.Time
	disrupted   map[string]time.Time

	standardTTL  time.Duration
	disruptedTTL time.Duration
}

func newAnnouncementRecords(standardTTL, disruptedTTL time.Duration) *announcementRecords {
	return &announcementRecords{
		next:        map[string]time.Time{},
		approaching: map[string]time.Time{},
		standing:    map[string]time.Time{},
		disrupted:   map[string]time.Time{},

		standardTTL:  standardTTL,
		disruptedTTL: disruptedTTL,
	}
}

func (r *announcementRecords) MarkNext(rid string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next[rid] = now
}

func (r *announcementRecords) MarkApproaching(rid string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.approaching[rid] = now
	r.next[rid] = now
}

func (r *announcementRecords) MarkStanding(rid string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.standing[rid] = now
	r.approaching[rid] = now
	r.next[rid] = now
}

func (r *announcementRecords) MarkDisrupted(rid string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.disrupted[rid] = now
}

// CanAnnounceNext reports whether a next-train announcement may play.
func (r *announcementRecords) CanAnnounceNext(rid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, announced := r.next[rid]

	return !announced
}

// CanAnnounceApproaching is blocked by an earlier approaching or
// next-train announcement for the same service.
func (r *announcementRecords) CanAnnounceApproaching(rid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, announced := r.approaching[rid]; announced {
		return false
	}
	_, announced := r.next[rid]

	return !announced
}

// CanAnnounceStanding is blocked by any earlier arrival-cycle announcement
// for the same service.
func (r *announcementRecords) CanAnnounceStanding(rid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, announced := r.standing[rid]; announced {
		return false
	}
	if _, announced := r.approaching[rid]; announced {
		return false
	}
	_, announced := r.next[rid]

	return !announced
}

func (r *announcementRecords) CanAnnounceDisrupted(rid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, announced := r.disrupted[rid]

	return !announced
}

// Sweep drops records past their lifetime so late-running diagrams that
// reuse an RID can be announced again.
func (r *announcementRecords) Sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, records := range []map[string]time.Time{r.next, r.approaching, r.standing} {
		for rid, announcedAt := range records {
			if now.Sub(announcedAt) >= r.standardTTL {
				delete(records, rid)
			}
		}
	}

	for rid, announcedAt := range r.disrupted {
		if now.Sub(announcedAt) >= r.disruptedTTL {
			delete(r.disrupted, rid)
		}
	}
}
