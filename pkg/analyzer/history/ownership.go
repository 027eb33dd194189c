package history

import "github.com/RoaringBitmap/roaring/v2"

// ownershipIndex tracks which authors have touched which files over a walk.
// Authors are interned to dense uint32 ids held in one roaring bitmap per
// file, so the per-file sets stay compact on long histories. Sets only ever
// grow; the running breadth sum makes the mean O(1) per commit instead of a
// full rescan.
type ownershipIndex struct {
	authorIDs map[string]uint32
	files     map[string]*roaring.Bitmap
	breadth   uint64
}

func newOwnershipIndex() *ownershipIndex {
	return &ownershipIndex{
		authorIDs: make(map[string]uint32),
		files:     make(map[string]*roaring.Bitmap),
	}
}

// Touch records that author changed path.
func (o *ownershipIndex) Touch(path, author string) {
	id, ok := o.authorIDs[author]
	if !ok {
		id = uint32(len(o.authorIDs))
		o.authorIDs[author] = id
	}

	set := o.files[path]
	if set == nil {
		set = roaring.New()
		o.files[path] = set
	}
	if set.CheckedAdd(id) {
		o.breadth++
	}
}

// MeanBreadth returns the average number of distinct authors per tracked
// file, or 0 when no file has been touched yet.
func (o *ownershipIndex) MeanBreadth() float64 {
	if len(o.files) == 0 {
		return 0
	}
	return float64(o.breadth) / float64(len(o.files))
}

// Files returns the number of distinct files touched so far.
func (o *ownershipIndex) Files() int {
	return len(o.files)
}

// Authors returns the number of distinct authors seen so far.
func (o *ownershipIndex) Authors() int {
	return len(o.authorIDs)
}
