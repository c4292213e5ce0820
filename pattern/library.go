package pattern

// The twelve canonical interface patterns. IP-1..IP-6 are bilateral message
// exchanges of increasing protocol complexity; IP-7..IP-12 add multiple
// transmission, multilateral acceptance and synchronous/asynchronous mixes.
// Channel labels are canonical per pattern ("a", "b", responses "ra", "rb",
// synchronous action "s"); Merge joins x! to x? through the channel place
// labeled x and fuses transitions sharing a synchronous label.
var catalog = []*Pattern{
	{
		Name:    "IP-1",
		Summary: "X sends a single message to Y",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) {
				v.place("p0").place("p1").trans("t0", "a!").
					flow("p0", "t0", "p1").start("p0").end("p1")
			},
			"Y": func(v *view) {
				v.place("p0").place("p1").trans("t0", "a?").
					flow("p0", "t0", "p1").start("p0").end("p1")
			},
		},
	},
	{
		Name:    "IP-2",
		Summary: "X concurrently sends several messages to Y",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { concurrentPair(v, "a!", "b!") },
			"Y": func(v *view) { concurrentPair(v, "a?", "b?") },
		},
	},
	{
		Name:    "IP-3",
		Summary: "X sends exactly one of several alternative messages to Y",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { alternativePair(v, "a!", "b!") },
			"Y": func(v *view) { alternativePair(v, "a?", "b?") },
		},
	},
	{
		Name:    "IP-4",
		Summary: "X sends a message to Y, then Y responds",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { exchange(v, "a!", "ra?") },
			"Y": func(v *view) { exchange(v, "a?", "ra!") },
		},
	},
	{
		Name:    "IP-5",
		Summary: "X concurrently sends several messages, Y responds to each",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { concurrentExchange(v, "a!", "ra?", "b!", "rb?") },
			"Y": func(v *view) { concurrentExchange(v, "a?", "ra!", "b?", "rb!") },
		},
	},
	{
		Name:    "IP-6",
		Summary: "X sends one alternative, Y sends the matching response",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { alternativeExchange(v, "a!", "ra?", "b!", "rb?") },
			"Y": func(v *view) { alternativeExchange(v, "a?", "ra!", "b?", "rb!") },
		},
	},
	{
		Name:    "IP-7",
		Summary: "X transmits repeatedly until it signals termination to Y",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { repeated(v, "a!", "stop!") },
			"Y": func(v *view) { repeated(v, "a?", "stop?") },
		},
	},
	{
		Name:    "IP-8",
		Summary: "Y accepts one of several incoming messages and notifies every sender",
		Roles:   []string{"X1", "X2", "Y"},
		views: map[string]viewFn{
			"X1": func(v *view) { exchange(v, "m1!", "acc1?") },
			"X2": func(v *view) { exchange(v, "m2!", "acc2?") },
			"Y": func(v *view) {
				v.place("p0").place("p1").
					trans("t0", "m1?").trans("t1", "m2?").
					flow("p0", "t0", "p1").flow("p0", "t1", "p1").
					silent("split").place("q1").place("q2").
					flow("p1", "split", "q1").flow("split", "q2").
					trans("n1", "acc1!").trans("n2", "acc2!").
					place("r1").place("r2").
					flow("q1", "n1", "r1").flow("q2", "n2", "r2").
					silent("join").place("p2").
					flow("r1", "join", "p2").flow("r2", "join").
					start("p0").end("p2")
			},
		},
	},
	{
		Name:    "IP-9",
		Summary: "X and Y synchronize, then exchange a message",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { exchange(v, "s", "a!") },
			"Y": func(v *view) { exchange(v, "s", "a?") },
		},
	},
	{
		Name:    "IP-10",
		Summary: "X and Y exchange a message, then synchronize",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { exchange(v, "a!", "s") },
			"Y": func(v *view) { exchange(v, "a?", "s") },
		},
	},
	{
		Name:    "IP-11",
		Summary: "X and Y synchronize concurrently with a message exchange",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { concurrentPair(v, "s", "a!") },
			"Y": func(v *view) { concurrentPair(v, "s", "a?") },
		},
	},
	{
		Name:    "IP-12",
		Summary: "X and Y either synchronize or exchange a message, not both",
		Roles:   []string{"X", "Y"},
		views: map[string]viewFn{
			"X": func(v *view) { alternativePair(v, "s", "a!") },
			"Y": func(v *view) { alternativePair(v, "s", "a?") },
		},
	},
}

// exchange: p0 -> first -> p1 -> second -> p2.
func exchange(v *view, first, second string) {
	v.place("p0").place("p1").place("p2").
		trans("t0", first).trans("t1", second).
		flow("p0", "t0", "p1", "t1", "p2").
		start("p0").end("p2")
}

// concurrentPair: AND-split into two branches carrying the two labels,
// then AND-join.
func concurrentPair(v *view, first, second string) {
	v.place("p0").silent("split").
		place("p1").place("p2").
		flow("p0", "split", "p1").flow("split", "p2").
		trans("t0", first).trans("t1", second).
		place("p3").place("p4").
		flow("p1", "t0", "p3").flow("p2", "t1", "p4").
		silent("join").place("p5").
		flow("p3", "join", "p5").flow("p4", "join").
		start("p0").end("p5")
}

// alternativePair: XOR choice between the two labels over shared endpoints.
func alternativePair(v *view, first, second string) {
	v.place("p0").place("p1").
		trans("t0", first).trans("t1", second).
		flow("p0", "t0", "p1").flow("p0", "t1", "p1").
		start("p0").end("p1")
}

// concurrentExchange: two concurrent branches, each a send followed by the
// matching response.
func concurrentExchange(v *view, first, firstResp, second, secondResp string) {
	v.place("p0").silent("split").
		place("p1").place("p2").
		flow("p0", "split", "p1").flow("split", "p2").
		trans("t0", first).trans("r0", firstResp).
		trans("t1", second).trans("r1", secondResp).
		place("p3").place("p4").place("p5").place("p6").
		flow("p1", "t0", "p3", "r0", "p5").
		flow("p2", "t1", "p4", "r1", "p6").
		silent("join").place("p7").
		flow("p5", "join", "p7").flow("p6", "join").
		start("p0").end("p7")
}

// alternativeExchange: XOR choice of send, each followed by its own
// response, rejoining in one final place.
func alternativeExchange(v *view, first, firstResp, second, secondResp string) {
	v.place("p0").place("p1").place("p2").place("p3").
		trans("t0", first).trans("r0", firstResp).
		trans("t1", second).trans("r1", secondResp).
		flow("p0", "t0", "p1", "r0", "p3").
		flow("p0", "t1", "p2", "r1", "p3").
		start("p0").end("p3")
}

// repeated: transmit, loop back silently for further transmissions, or
// terminate early with the closing label.
func repeated(v *view, each, last string) {
	v.place("p0").place("p1").place("p2").
		trans("t0", each).trans("t1", last).silent("more").
		flow("p0", "t0", "p1", "t1", "p2").
		flow("p1", "more", "p0").
		start("p0").end("p2")
}
