package editor

import (
	"encoding/json"
	"fmt"
)

type envelope struct {
	Type string `json:"type"`
}

var commandFactories = map[string]func() Command{
	"setContactField":  func() Command { return &SetContactField{} },
	"setSummary":       func() Command { return &SetSummary{} },
	"setTemplate":      func() Command { return &SetTemplate{} },
	"addExperience":    func() Command { return &AddExperience{} },
	"updateExperience": func() Command { return &UpdateExperience{} },
	"removeExperience": func() Command { return &RemoveExperience{} },
	"addHighlight":     func() Command { return &AddHighlight{} },
	"setHighlight":     func() Command { return &SetHighlight{} },
	"removeHighlight":  func() Command { return &RemoveHighlight{} },
	"addEducation":     func() Command { return &AddEducation{} },
	"updateEducation":  func() Command { return &UpdateEducation{} },
	"removeEducation":  func() Command { return &RemoveEducation{} },
	"addSkill":         func() Command { return &AddSkill{} },
	"updateSkill":      func() Command { return &UpdateSkill{} },
	"removeSkill":      func() Command { return &RemoveSkill{} },
	"appendSkills":     func() Command { return &AppendSkills{} },
	"replace":          func() Command { return &Replace{} },
}

// DecodeCommand parses a {"type": "...", ...} envelope into a Command.
func DecodeCommand(raw []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	factory, ok := commandFactories[env.Type]
	if !ok {
		return nil, fmt.Errorf("command type %q: %w", env.Type, ErrInvalidValue)
	}
	cmd := factory()
	if err := json.Unmarshal(raw, cmd); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Type, err)
	}
	return cmd, nil
}
