package persist

import (
	"path/filepath"

	"github.com/hupe1980/agentmemory/core"
)

// Snapshot file stems within a bundle directory; the codec's format supplies
// the extension.
const (
	episodicFileStem = "episodic"
	semanticFileStem = "semantic"
)

// Bundle pairs the two snapshots a directory holds. The presence flags are
// independent because either file can be missing on its own, for example
// after a partial manual cleanup.
type Bundle struct {
	Episodic    core.EpisodicSnapshot
	HasEpisodic bool
	Semantic    core.SemanticSnapshot
	HasSemantic bool
}

// EpisodicPath returns the episodic snapshot path inside dir for this
// codec's format.
func (c *Codec) EpisodicPath(dir string) string {
	return filepath.Join(dir, episodicFileStem+c.format.Ext())
}

// SemanticPath returns the semantic snapshot path inside dir for this
// codec's format.
func (c *Codec) SemanticPath(dir string) string {
	return filepath.Join(dir, semanticFileStem+c.format.Ext())
}

// SaveBundle writes both snapshots into dir, creating it as needed. The two
// files are written independently; a failure on the second leaves the first
// in place.
func (c *Codec) SaveBundle(dir string, episodic core.EpisodicSnapshot, semantic core.SemanticSnapshot) error {
	if err := c.SaveEpisodic(c.EpisodicPath(dir), episodic); err != nil {
		return err
	}
	return c.SaveSemantic(c.SemanticPath(dir), semantic)
}

// LoadBundle reads whatever snapshots dir holds for this codec's format.
// Missing files leave the matching presence flag false without error;
// corrupt files fail the whole load.
func (c *Codec) LoadBundle(dir string) (Bundle, error) {
	var b Bundle
	var err error
	b.Episodic, b.HasEpisodic, err = c.LoadEpisodic(c.EpisodicPath(dir))
	if err != nil {
		return Bundle{}, err
	}
	b.Semantic, b.HasSemantic, err = c.LoadSemantic(c.SemanticPath(dir))
	if err != nil {
		return Bundle{}, err
	}
	return b, nil
}
