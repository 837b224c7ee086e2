package session

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/snake/prefabs"
)

// Watch applies watcher notifications to the session. configPath is the
// game spec in use; empty means the prefabs directory copy of game.yaml.
func (s *Session) Watch(w *prefabs.Watcher, configPath string) {
	if w == nil {
		return
	}
	changed, err := w.Poll()
	if err != nil {
		log.Printf("session: watch: %v", err)
	}
	s.HandleChanges(changed, configPath)
}

// HandleChanges reloads the game spec or scripts named in changed. Failed
// reloads are logged and the previous tunables stay in effect.
func (s *Session) HandleChanges(changed []string, configPath string) {
	target := configPath
	if target == "" {
		target = filepath.Join(prefabs.Dir, prefabs.GameSpecFile)
	}

	for _, name := range changed {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".tengo":
			log.Printf("session: script %s changed", name)
			s.ReloadScripts()
		case ".yaml", ".yml":
			if filepath.Base(name) != filepath.Base(target) {
				continue
			}
			if err := s.Reload(target); err != nil {
				log.Printf("session: reload %s: %v", target, err)
				continue
			}
			log.Printf("session: applied %s", target)
		}
	}
}
