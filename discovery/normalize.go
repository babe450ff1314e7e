package discovery

import (
	"regexp"
	"sort"
	"strconv"
)

// shardPattern matches the "-00001-of-00004" infix of a sharded file.
var shardPattern = regexp.MustCompile(`-(\d{5})-of-(\d{5})`)

// ShardInfo describes one shard of a multi-part file.
type ShardInfo struct {
	// Key is the filename with the shard infix removed. All shards of one
	// artifact share it.
	Key   string
	Index int
	Total int
}

// ParseShard reports whether p names a shard and, if so, which one.
func ParseShard(p string) (ShardInfo, bool) {
	loc := shardPattern.FindStringSubmatchIndex(p)
	if loc == nil {
		return ShardInfo{}, false
	}
	index, _ := strconv.Atoi(p[loc[2]:loc[3]])
	total, _ := strconv.Atoi(p[loc[4]:loc[5]])
	return ShardInfo{
		Key:   p[:loc[0]] + p[loc[1]:],
		Index: index,
		Total: total,
	}, true
}

// ArtifactGroup is one logical weight artifact: a single file, or every
// shard of a multi-part file. Its JSON form is the file listing entry.
type ArtifactGroup struct {
	// Filename is the grouping key: the file path, or the shard path with
	// the shard infix removed.
	Filename   string       `json:"filename"`
	Format     WeightFormat `json:"format"`
	Quant      string       `json:"quant"`
	TotalBytes int64        `json:"size_bytes"`

	// ShardCount is the declared shard total; Files holds the shards that
	// are actually present, in shard order.
	ShardCount int      `json:"shard_count"`
	Files      []string `json:"all_files"`

	Repo string `json:"-"`

	// Order is the position of the group's first file in the listing.
	Order int `json:"-"`
}

// Sharded reports whether the group was assembled from shard files.
func (g ArtifactGroup) Sharded() bool {
	return len(g.Files) != 1 || g.Files[0] != g.Filename
}

// Template returns the catalog filename template for the group. Sharded
// groups template their first shard, the file a downloader starts with.
func (g ArtifactGroup) Template() string {
	return FilenameTemplate(g.templateSource())
}

// TemplateQuant returns the token Template replaced, as spelled in the
// file name, or "" when the template has no placeholder.
func (g ArtifactGroup) TemplateQuant() string {
	token, _ := QuantToken(g.templateSource())
	return token
}

func (g ArtifactGroup) templateSource() string {
	if len(g.Files) == 0 {
		return g.Filename
	}
	return g.Files[0]
}

type groupKey struct {
	name    string
	sharded bool
}

type shardMember struct {
	path  string
	index int
}

// Normalize folds a repository listing into artifact groups. Only the
// given formats are kept; with none given every classified file is kept,
// including FormatUnknown. Groups are ordered by ascending total size,
// ties in listing order.
func Normalize(repoID string, files []RawFile, formats ...WeightFormat) []ArtifactGroup {
	wanted := make(map[WeightFormat]bool, len(formats))
	for _, f := range formats {
		wanted[f] = true
	}

	var (
		groups  []*ArtifactGroup
		members [][]shardMember
		byKey   = make(map[groupKey]int)
	)
	for _, f := range files {
		format, ok := ClassifyFile(f.Path)
		if !ok || (len(wanted) > 0 && !wanted[format]) {
			continue
		}

		key := groupKey{name: f.Path}
		index, total := 1, 1
		if shard, ok := ParseShard(f.Path); ok {
			key = groupKey{name: shard.Key, sharded: true}
			index, total = shard.Index, shard.Total
		}

		i, seen := byKey[key]
		if !seen {
			quant, ok := ExtractQuant(key.name)
			if !ok {
				quant = QuantUnknown
			}
			i = len(groups)
			byKey[key] = i
			groups = append(groups, &ArtifactGroup{
				Filename:   key.name,
				Format:     format,
				Quant:      quant,
				ShardCount: total,
				Repo:       repoID,
				Order:      i,
			})
			members = append(members, nil)
		}

		g := groups[i]
		g.TotalBytes += max(f.Size, 0)
		g.ShardCount = max(g.ShardCount, total)
		members[i] = append(members[i], shardMember{path: f.Path, index: index})
	}

	out := make([]ArtifactGroup, 0, len(groups))
	for i, g := range groups {
		m := members[i]
		sort.SliceStable(m, func(a, b int) bool { return m[a].index < m[b].index })
		g.Files = make([]string, 0, len(m))
		for _, s := range m {
			g.Files = append(g.Files, s.path)
		}
		out = append(out, *g)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].TotalBytes < out[b].TotalBytes })
	return out
}

// SelectRepresentative picks the artifact a catalog entry points at: the
// PreferredQuant group if there is one, otherwise the first group in
// listing order.
func SelectRepresentative(groups []ArtifactGroup) (ArtifactGroup, bool) {
	best := -1
	for i, g := range groups {
		switch {
		case best == -1:
			best = i
		case (g.Quant == PreferredQuant) != (groups[best].Quant == PreferredQuant):
			if g.Quant == PreferredQuant {
				best = i
			}
		case g.Order < groups[best].Order:
			best = i
		}
	}
	if best == -1 {
		return ArtifactGroup{}, false
	}
	return groups[best], true
}
