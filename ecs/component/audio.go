package component

// Audio holds named clips and their pending play requests. Index i of every
// slice describes the same clip.
type Audio struct {
	Names []string
	Files []string
	Loop  []bool
	Play  []bool
}

var AudioComponent = NewComponent[Audio]()

// Request flags the clip called name for playback on the next audio update.
func (a *Audio) Request(name string) bool {
	if a == nil {
		return false
	}
	for i := range a.Names {
		if a.Names[i] == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}
