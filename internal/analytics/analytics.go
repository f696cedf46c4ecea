package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"rag_reply_bot/internal/logger"
	"rag_reply_bot/pkg"
)

// state is the on-disk analytics document. Corrections and feedback are
// truncated to the last 100 records on save.
type state struct {
	TotalMessages      int              `json:"total_messages"`
	Conversations      int              `json:"conversations"`
	MessagesByUser     map[string]int   `json:"messages_by_user"`
	MessagesByMood     map[string]int   `json:"messages_by_mood"`
	MessagesByLanguage map[string]int   `json:"messages_by_language"`
	DailyStats         map[string]int   `json:"daily_stats"`
	Corrections        []pkg.Correction `json:"corrections"`
	Feedback           []pkg.Feedback   `json:"feedback"`
}

// Analytics aggregates usage counters and bounded correction/feedback logs.
// Every mutation rewrites the full document under the mutex; a failed save
// keeps the in-memory state applied.
type Analytics struct {
	mu   sync.Mutex
	path string
	data state
}

// NewAnalytics loads the analytics document from path, starting fresh when
// it does not exist yet.
func NewAnalytics(path string) (*Analytics, error) {
	a := &Analytics{path: path, data: emptyState()}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return a, nil
		}
		return nil, fmt.Errorf("failed to read analytics file: %w", err)
	}
	if err := sonic.Unmarshal(raw, &a.data); err != nil {
		return nil, fmt.Errorf("failed to parse analytics file: %w", err)
	}
	// Maps may be null in an older document.
	if a.data.MessagesByUser == nil {
		a.data.MessagesByUser = map[string]int{}
	}
	if a.data.MessagesByMood == nil {
		a.data.MessagesByMood = map[string]int{}
	}
	if a.data.MessagesByLanguage == nil {
		a.data.MessagesByLanguage = map[string]int{}
	}
	if a.data.DailyStats == nil {
		a.data.DailyStats = map[string]int{}
	}
	return a, nil
}

func emptyState() state {
	return state{
		MessagesByUser:     map[string]int{},
		MessagesByMood:     map[string]int{},
		MessagesByLanguage: map[string]int{},
		DailyStats:         map[string]int{},
	}
}

// TrackMessage increments the total, per-user, per-day and, when provided,
// per-mood and per-language counters.
func (a *Analytics) TrackMessage(userID, mood, language string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.TotalMessages++
	a.data.MessagesByUser[userID]++
	a.data.DailyStats[time.Now().Format("2006-01-02")]++
	if mood != "" {
		a.data.MessagesByMood[mood]++
	}
	if language != "" {
		a.data.MessagesByLanguage[language]++
	}

	a.saveLocked()
}

// TrackCorrection records a correction.
func (a *Analytics) TrackCorrection(c pkg.Correction) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.Corrections = append(a.data.Corrections, c)
	a.saveLocked()
}

// TrackFeedback records a feedback entry.
func (a *Analytics) TrackFeedback(f pkg.Feedback) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.Feedback = append(a.data.Feedback, f)
	a.saveLocked()
}

// GetStats returns the aggregate snapshot with top-5 moods and languages.
func (a *Analytics) GetStats() pkg.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	return pkg.Stats{
		TotalMessages:          a.data.TotalMessages,
		UniqueUsers:            len(a.data.MessagesByUser),
		TopMoods:               topN(a.data.MessagesByMood, 5),
		TopLanguages:           topN(a.data.MessagesByLanguage, 5),
		RecentCorrectionsCount: len(a.data.Corrections),
	}
}

// GetDailyStats returns message counts for the last `days` days, most
// recent first, including zero days.
func (a *Analytics) GetDailyStats(days int) map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		result[date] = a.data.DailyStats[date]
	}
	return result
}

// saveLocked rewrites the document with bounded logs. Callers must hold
// the mutex. Persistence is best-effort.
func (a *Analytics) saveLocked() {
	out := a.data
	if len(out.Corrections) > 100 {
		out.Corrections = out.Corrections[len(out.Corrections)-100:]
	}
	if len(out.Feedback) > 100 {
		out.Feedback = out.Feedback[len(out.Feedback)-100:]
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal analytics state")
		return
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		logger.Error().Err(err).Msg("Failed to create analytics directory")
		return
	}
	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		logger.Error().Err(err).Msg("Failed to persist analytics state")
		return
	}
	if err := os.Rename(tmp, a.path); err != nil {
		logger.Error().Err(err).Msg("Failed to replace analytics state")
	}
}

// topN returns up to n entries of counts with the highest values.
func topN(counts map[string]int, n int) map[string]int {
	type kv struct {
		key   string
		count int
	}
	sorted := make([]kv, 0, len(counts))
	for k, v := range counts {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].key < sorted[j].key
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make(map[string]int, len(sorted))
	for _, e := range sorted {
		out[e.key] = e.count
	}
	return out
}
