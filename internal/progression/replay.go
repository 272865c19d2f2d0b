package progression

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
	"github.com/vovakirdan/dungeon-progress/internal/events"
	"github.com/vovakirdan/dungeon-progress/internal/rewards"
)

// maxRepeat bounds a single step so a typo cannot spin forever.
const maxRepeat = 100000

// Step is one line of a replay script. Fields other than name, repeat and
// perk are passed to the event as its payload.
//
//	- name: stage_entered
//	  stage: 3
//	- name: enemy_killed
//	  repeat: 20
//	- perk: vitality
type Step struct {
	Name   events.Name    `yaml:"name"`
	Repeat int            `yaml:"repeat"`
	Perk   string         `yaml:"perk"`
	Fields map[string]any `yaml:",inline"`
}

// Script is an ordered list of steps.
type Script []Step

// Report summarizes a replay.
type Report struct {
	Steps        int
	Events       int
	ShardsGained int
	PerksBought  int
	PerksFailed  int
	Unlocked     []achievements.Definition
	Relics       []string
	RunUpgrades  []string
}

// ParseScript decodes a YAML replay script.
func ParseScript(data []byte) (Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("progression: cannot parse replay script: %w", err)
	}
	for i, step := range script {
		if step.Name == "" && step.Perk == "" {
			return nil, fmt.Errorf("progression: step %d has neither name nor perk", i+1)
		}
		if step.Repeat < 0 || step.Repeat > maxRepeat {
			return nil, fmt.Errorf("progression: step %d repeat %d out of range", i+1, step.Repeat)
		}
	}
	return script, nil
}

// LoadScript reads and parses a replay script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("progression: cannot read replay script: %w", err)
	}
	return ParseScript(data)
}

// Replay drives the service through script. Run, boss, room and perk steps
// go through the same entry points a game host would use; every other event
// is emitted as-is.
func (s *Service) Replay(script Script) (Report, error) {
	var report Report
	if !s.initialized {
		return report, ErrNotInitialized
	}

	prev := s.onUnlock
	s.onUnlock = func(def achievements.Definition) {
		report.Unlocked = append(report.Unlocked, def)
		if prev != nil {
			prev(def)
		}
	}
	defer func() { s.onUnlock = prev }()

	for i, step := range script {
		n := step.Repeat
		if n == 0 {
			n = 1
		}
		for range n {
			if err := s.replayStep(step, &report); err != nil {
				return report, fmt.Errorf("progression: step %d: %w", i+1, err)
			}
		}
		report.Steps++
	}

	s.logger.Debug("replay finished", "steps", report.Steps, "events", report.Events, "unlocked", len(report.Unlocked))
	return report, nil
}

func (s *Service) replayStep(step Step, report *Report) error {
	if step.Perk != "" {
		ok, err := s.BuyPerk(step.Perk)
		if err != nil {
			return err
		}
		if ok {
			report.PerksBought++
		} else {
			report.PerksFailed++
		}
		return nil
	}

	ev, err := events.Decode(step.Name, step.Fields)
	if err != nil {
		return err
	}
	report.Events++

	switch p := ev.(type) {
	case events.RunStart:
		_, err = s.StartRun(p.MetaBoosterActive)
	case events.RunEnd:
		err = s.EndRun(p.Stage, stringOf(step.Fields, "biomeId"))
	case events.BossKilled:
		var reward rewards.BossReward
		reward, err = s.BossKilled(rewards.BossKill{
			Stage:   intOf(step.Fields, "stage"),
			BiomeID: stringOf(step.Fields, "biomeId"),
		})
		report.ShardsGained += reward.ShardsGained
		if reward.RelicID != "" {
			report.Relics = append(report.Relics, reward.RelicID)
		}
		if reward.RunUpgradeID != "" {
			report.RunUpgrades = append(report.RunUpgrades, reward.RunUpgradeID)
		}
	case events.RoomCleared:
		var shards int
		shards, err = s.RoomCleared()
		report.ShardsGained += shards
	default:
		err = s.Emit(ev)
	}
	return err
}

func intOf(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func stringOf(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}
