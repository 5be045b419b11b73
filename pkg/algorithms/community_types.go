package algorithms

// Community represents a detected community
type Community struct {
	ID      int     `json:"id" yaml:"id"`
	Label   int     `json:"label" yaml:"label"`
	Nodes   []int   `json:"nodes" yaml:"nodes"`
	Size    int     `json:"size" yaml:"size"`
	Density float64 `json:"density" yaml:"density"` // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community `json:"communities" yaml:"communities"`
	Modularity    float64      `json:"modularity" yaml:"modularity"` // Quality measure of the partitioning
	NodeCommunity []int        `json:"-" yaml:"-"`                   // Node ID -> Community ID
}
