package track

// GroupByDate partitions records by Date. Groups are created in first-seen
// order and keep the input order of their records. Records without a date
// (including an empty one) are left out of every group.
func GroupByDate(records []Record) Groups {
	g := Groups{index: make(map[string]int)}

	for _, r := range records {
		if r.Date == nil || *r.Date == "" {
			continue
		}

		i, ok := g.index[*r.Date]
		if !ok {
			i = len(g.groups)
			g.index[*r.Date] = i
			g.groups = append(g.groups, Group{Date: *r.Date})
		}
		g.groups[i].Records = append(g.groups[i].Records, r)
	}

	return g
}
