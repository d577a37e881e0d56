package phicp

import (
	"fmt"
	"strings"

	"github.com/decibelcooper/phicp/analysis"
)

// ListFlags is a repeatable string flag. The first occurrence on the command
// line replaces the default list; later ones append. Comma-separated values
// are split.
type ListFlags struct {
	List    []string
	beenSet bool
}

func (f *ListFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.List = nil
	}
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			f.List = append(f.List, v)
		}
	}
	return nil
}

func (f *ListFlags) String() string {
	return strings.Join(f.List, ",")
}

// IsSet reports whether the flag appeared on the command line.
func (f *ListFlags) IsSet() bool { return f.beenSet }

// BranchFlags is a repeatable flag naming tree branches.
type BranchFlags struct {
	Branches []analysis.Branch
}

func (f *BranchFlags) Set(valueStr string) error {
	for _, name := range strings.Split(valueStr, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		b, ok := analysis.ParseBranch(name)
		if !ok {
			return fmt.Errorf("unknown branch %q", name)
		}
		f.Branches = append(f.Branches, b)
	}
	return nil
}

func (f *BranchFlags) String() string {
	return fmt.Sprint(f.Branches)
}
