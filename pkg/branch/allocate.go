package branch

import "sort"

// Allocate picks the next branch name for a topic, given a snapshot of every
// branch name known to exist (local and remote). It returns topic/N where N is
// the smallest non-negative integer not already used by that topic; gaps left
// by accepted or abandoned branches are reused.
//
// The snapshot is just that: two callers allocating against the same snapshot
// can pick the same name. The remote's atomic ref creation rejects the second
// push, and the loser re-runs against a fresh snapshot.
func Allocate(topic string, existing []string) (Name, error) {
	if err := ValidateTopic(topic); err != nil {
		return Name{}, err
	}

	taken := make(map[int]bool)
	for _, s := range existing {
		name, err := Parse(s)
		if err != nil {
			// Branches outside the convention don't reserve indices.
			continue
		}
		if name.Topic == topic {
			taken[name.Index] = true
		}
	}

	index := 0
	for taken[index] {
		index++
	}

	return Name{Topic: topic, Index: index}, nil
}

// Group describes every open index for one topic.
type Group struct {
	Topic   string
	Indices []int
}

// Names returns the full branch names of the group, in index order.
func (g Group) Names() []string {
	names := make([]string, len(g.Indices))
	for i, index := range g.Indices {
		names[i] = Name{Topic: g.Topic, Index: index}.String()
	}
	return names
}

// GroupNames buckets branch names by topic for display. Groups come back
// sorted by topic with indices ascending. Names that don't follow the
// convention are returned in skipped so the caller can warn about them
// without failing the listing.
func GroupNames(names []string) (groups []Group, skipped []string) {
	byTopic := make(map[string][]int)
	for _, s := range names {
		name, err := Parse(s)
		if err != nil {
			skipped = append(skipped, s)
			continue
		}
		byTopic[name.Topic] = append(byTopic[name.Topic], name.Index)
	}

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		indices := byTopic[topic]
		sort.Ints(indices)
		groups = append(groups, Group{Topic: topic, Indices: indices})
	}

	return groups, skipped
}
