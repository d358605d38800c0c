package runemetrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-player-tracker/internal/config"
	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
	"go-player-tracker/internal/models"
)

const (
	endpointProfile  = "profile"
	endpointQuests   = "quests"
	endpointHiscores = "hiscores"

	// skill XP is reported in tenths
	xpScale = 10
)

// Ensure Client implements the upstream interfaces
var (
	_ interfaces.ProfileFetcher   = (*Client)(nil)
	_ interfaces.ExistenceChecker = (*Client)(nil)
)

// Client talks to the RuneMetrics and hiscores HTTP APIs
type Client struct {
	httpClient     *http.Client
	runeMetricsURL string
	hiscoresURL    string
	activities     int
	maxConcurrency int
	logger         *zap.Logger
}

// NewClient creates an upstream client. Call deadlines come from the caller's context;
// the http.Client timeout is a backstop.
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Millisecond},
		runeMetricsURL: strings.TrimRight(cfg.RuneMetricsURL, "/"),
		hiscoresURL:    strings.TrimRight(cfg.HiscoresURL, "/"),
		activities:     cfg.Activities,
		maxConcurrency: cfg.MaxConcurrency,
		logger:         logger,
	}
}

// FetchProfile fetches the profile and quest list of a player concurrently
// and merges them into one Profile
func (c *Client) FetchProfile(ctx context.Context, username string) (*models.Profile, error) {
	var (
		profile profileResponse
		quests  questsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, endpointProfile, c.runeMetricsURL+"/profile/profile", url.Values{
			"user":       {username},
			"activities": {strconv.Itoa(c.activities)},
		}, &profile)
	})
	g.Go(func() error {
		return c.getJSON(gctx, endpointQuests, c.runeMetricsURL+"/quests", url.Values{
			"user": {username},
		}, &quests)
	})
	if err := g.Wait(); err != nil {
		c.logger.Warn("RuneMetrics fetch failed", zap.String("player", username), zap.Error(err))
		return nil, err
	}

	if profile.Error != "" {
		metrics.RecordUpstreamFetch(endpointProfile, metrics.ProfileError)
		return nil, metrics.Categorize(metrics.ProfileError, fmt.Errorf("runemetrics profile unavailable: %s", profile.Error))
	}
	if quests.Error != "" {
		metrics.RecordUpstreamFetch(endpointQuests, metrics.ProfileError)
		return nil, metrics.Categorize(metrics.ProfileError, fmt.Errorf("runemetrics quests unavailable: %s", quests.Error))
	}

	return buildProfile(username, &profile, &quests)
}

// CheckExistence reports which names have a hiscores entry. Lookups run
// concurrently up to the configured limit; keys are lower-cased names.
func (c *Client) CheckExistence(ctx context.Context, names []string) (map[string]bool, error) {
	exists := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for i, name := range names {
		g.Go(func() error {
			found, err := c.hiscoresLookup(gctx, name)
			if err != nil {
				return fmt.Errorf("existence check for %q failed: %w", name, err)
			}
			exists[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(names))
	for i, name := range names {
		result[strings.ToLower(name)] = exists[i]
	}
	return result, nil
}

func (c *Client) hiscoresLookup(ctx context.Context, name string) (bool, error) {
	stop := metrics.TimeUpstreamCall(endpointHiscores)
	defer stop()

	endpoint := c.hiscoresURL + "/index_lite.ws?" + url.Values{"player": {name}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("request failed: %w", err)
		metrics.RecordUpstreamFetch(endpointHiscores, metrics.CategorizeError(err))
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		metrics.RecordUpstreamFetch(endpointHiscores, metrics.NoError)
		return true, nil
	case http.StatusNotFound:
		metrics.RecordUpstreamFetch(endpointHiscores, metrics.NoError)
		return false, nil
	default:
		metrics.RecordUpstreamFetch(endpointHiscores, metrics.HTTPError)
		return false, metrics.Categorize(metrics.HTTPError, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint, base string, query url.Values, out interface{}) (err error) {
	stop := metrics.TimeUpstreamCall(endpoint)
	defer stop()
	defer func() {
		metrics.RecordUpstreamFetch(endpoint, metrics.CategorizeError(err))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return metrics.Categorize(metrics.HTTPError, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return metrics.Categorize(metrics.DecodeError, fmt.Errorf("failed to decode %s response: %w", endpoint, err))
	}
	return nil
}

func buildProfile(username string, p *profileResponse, q *questsResponse) (*models.Profile, error) {
	rank, err := parseRank(p.Rank)
	if err != nil {
		return nil, metrics.Categorize(metrics.DecodeError, err)
	}

	loggedIn, err := parseBool(p.LoggedIn)
	if err != nil {
		return nil, metrics.Categorize(metrics.DecodeError, err)
	}

	name := p.Name
	if name == "" {
		name = username
	}

	profile := &models.Profile{
		Username:   name,
		LoggedIn:   loggedIn,
		Activities: make([]models.Activity, 0, len(p.Activities)),
		Skills: models.SkillSummary{
			Rank:        rank,
			XP:          p.TotalXP,
			Level:       p.TotalSkill,
			CombatLevel: p.CombatLevel,
			Skills:      make([]models.Skill, 0, len(p.SkillValues)),
		},
		Quests: models.QuestSummary{
			Completed:  p.QuestsComplete,
			InProgress: p.QuestsStarted,
			NotStarted: p.QuestsNotStarted,
			Quests:     make([]models.Quest, 0, len(q.Quests)),
		},
	}

	for _, a := range p.Activities {
		profile.Activities = append(profile.Activities, models.Activity{Date: a.Date, Details: a.Details, Text: a.Text})
	}

	for _, sv := range p.SkillValues {
		skillName, ok := models.SkillMap[sv.ID]
		if !ok {
			// skills added upstream after this build are skipped
			continue
		}
		profile.Skills.Skills = append(profile.Skills.Skills, models.Skill{
			JagexID:   sv.ID,
			HumanName: skillName,
			XP:        sv.XP / xpScale,
			Rank:      sv.Rank,
			Level:     sv.Level,
		})
	}
	sort.Slice(profile.Skills.Skills, func(i, j int) bool {
		return profile.Skills.Skills[i].JagexID < profile.Skills.Skills[j].JagexID
	})

	for _, quest := range q.Quests {
		profile.Quests.Quests = append(profile.Quests.Quests, models.Quest{
			Title:       quest.Title,
			Status:      models.QuestStatus(quest.Status),
			Difficulty:  quest.Difficulty,
			Members:     quest.Members,
			QuestPoints: quest.QuestPoints,
			Eligible:    quest.UserEligible,
		})
	}

	return profile, nil
}

// parseRank parses "1,234,567"; unranked players have an empty rank
func parseRank(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, nil
	}
	rank, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rank %q: %w", raw, err)
	}
	return rank, nil
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("invalid loggedIn value " + strconv.Quote(raw))
	}
	return v, nil
}
