package entity

// Draft is the durable record behind an interrupted creation flow: the
// partially filled listing plus the wizard step it was left on. CurrentDraft
// is nil until the first field edit of a session.
type Draft struct {
	CurrentDraft *Listing `json:"currentDraft"`
	Step         int      `json:"step"`
}

func NewDraft() *Draft {
	return &Draft{CurrentDraft: nil, Step: 0}
}

// Merge applies the patch onto the stored partial listing, allocating it on
// first use, and records the step index.
func (d *Draft) Merge(patch ListingPatch, step int) {
	if d.CurrentDraft == nil {
		d.CurrentDraft = &Listing{}
	}
	patch.Apply(d.CurrentDraft)
	d.Step = step
}
