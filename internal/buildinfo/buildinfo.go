package buildinfo

// Injectées au build via -ldflags, par exemple :
//
//	-X github.com/Guilhem-Bonnet/metro-cards/internal/buildinfo.Version=v0.1.0
//	-X github.com/Guilhem-Bonnet/metro-cards/internal/buildinfo.Commit=abcdef
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// UserAgent est envoyé à l'API d'horaires amont.
func UserAgent() string {
	if Commit != "" {
		return "metro-cards/" + Version + " (" + Commit + ")"
	}
	return "metro-cards/" + Version
}
