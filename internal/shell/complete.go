package shell

import (
	"os"
	"path/filepath"
	"strings"
)

var photoExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// createFileCompleter completes image files in the directory of the word being
// typed.
func createFileCompleter() func([]string) []string {
	return func(args []string) []string {
		dir := "."
		if len(args) > 0 {
			if d := filepath.Dir(args[len(args)-1]); d != "" {
				dir = d
			}
		}
		return listPhotos(dir)
	}
}

func listPhotos(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if !strings.HasPrefix(name, ".") {
				out = append(out, filepath.Join(dir, name)+"/")
			}
			continue
		}
		if photoExts[strings.ToLower(filepath.Ext(name))] {
			if dir == "." {
				out = append(out, name)
			} else {
				out = append(out, filepath.Join(dir, name))
			}
		}
	}
	return out
}
