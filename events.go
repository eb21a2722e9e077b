package main

import "time"

// Kind identifies which structured event variant a log line produced.
type Kind string

const (
	KindJoin           Kind = "JOIN"
	KindLeave          Kind = "LEAVE"
	KindChat           Kind = "CHAT"
	KindCommand        Kind = "CMD"
	KindResearch       Kind = "RESEARCH"
	KindDeath          Kind = "DEATH"
	KindOnlineSnapshot Kind = "ONLINE_SNAPSHOT"
	KindAccess         Kind = "ACCESS"
	KindIdentitySeen   Kind = "IDENTITY_SEEN"
	KindStatsKill      Kind = "STATS_KILL"
	KindStatsDeath     Kind = "STATS_DEATH"
	KindPlaced         Kind = "PLACED"
	KindMined          Kind = "MINED"
)

// allKinds enumerates every kind the matcher can produce, in dispatch-table
// order.
var allKinds = []Kind{
	KindJoin, KindLeave, KindChat, KindCommand, KindResearch, KindDeath,
	KindOnlineSnapshot, KindAccess, KindIdentitySeen,
	KindStatsKill, KindStatsDeath, KindPlaced, KindMined,
}

// Event is a classified log line. Line always holds the raw matched text;
// subscribers that want to stay decoupled from the parsed fields re-parse it
// themselves. Extra carries kind-specific fields (unit, weapon, conn, country,
// region, tech, hours, count, ...).
type Event struct {
	Kind    Kind
	Line    string
	Player  string
	Message string
	Extra   map[string]string
	Time    time.Time
}

func (e Event) extra(key string) string {
	if e.Extra == nil {
		return ""
	}
	return e.Extra[key]
}

// Handler receives dispatched events. Handlers run sequentially on the tick
// goroutine; a panicking handler is recovered and logged by the router.
type Handler func(e Event)
