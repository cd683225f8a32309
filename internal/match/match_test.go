package match

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/registration"
	"github.com/tourneo/tourneo/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	err = db.AutoMigrate(
		&Match{}, &registration.Registration{},
		&user.User{}, &user.PlayerProfile{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	// Team membership is read from these tables by name.
	stmts := []string{
		`CREATE TABLE teams (id INTEGER PRIMARY KEY AUTOINCREMENT, captain_id INTEGER, deleted_at DATETIME)`,
		`CREATE TABLE team_members (id INTEGER PRIMARY KEY AUTOINCREMENT, team_id INTEGER, user_id INTEGER, status TEXT, deleted_at DATETIME)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
	}
	return db
}

func newController(db *gorm.DB) *MatchController {
	return NewMatchController(
		NewMatchRepository(db),
		registration.NewRegistrationRepository(db),
		user.NewUserRepository(db),
	)
}

func authedContext(t *testing.T, w *httptest.ResponseRecorder, userID uint, path string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	c.Set(middleware.AuthUserIDKey, userID)
	return c
}

func TestResultFor(t *testing.T) {
	teams := map[uint]bool{10: true}
	cases := []struct {
		name  string
		match Match
		want  string // "" means nil
	}{
		{"won as team A", Match{TeamAID: 10, TeamBID: 20, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished}, "won"},
		{"lost as team B", Match{TeamAID: 20, TeamBID: 10, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished}, "lost"},
		{"won as team B", Match{TeamAID: 20, TeamBID: 10, ScoreA: intPtr(0), ScoreB: intPtr(2), Status: StatusFinished}, "won"},
		{"unfinished", Match{TeamAID: 10, TeamBID: 20, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusLive}, ""},
		{"missing score", Match{TeamAID: 10, TeamBID: 20, ScoreA: intPtr(3), Status: StatusFinished}, ""},
		{"draw", Match{TeamAID: 10, TeamBID: 20, ScoreA: intPtr(2), ScoreB: intPtr(2), Status: StatusFinished}, ""},
		{"not my match", Match{TeamAID: 30, TeamBID: 20, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished}, ""},
	}
	for _, tc := range cases {
		got := tc.match.ResultFor(teams)
		if tc.want == "" {
			if got != nil {
				t.Errorf("%s: expected nil result, got %q", tc.name, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Errorf("%s: expected %q, got %v", tc.name, tc.want, got)
		}
	}
}

// seedTeams makes user 1 captain of team 10 and accepted member of team 11,
// with an invited-only row on team 12.
func seedTeams(t *testing.T, db *gorm.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO teams (id, captain_id) VALUES (10, 1)`,
		`INSERT INTO teams (id, captain_id) VALUES (11, 2)`,
		`INSERT INTO teams (id, captain_id) VALUES (12, 3)`,
		`INSERT INTO team_members (team_id, user_id, status) VALUES (11, 1, 'accepted')`,
		`INSERT INTO team_members (team_id, user_id, status) VALUES (12, 1, 'invited')`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("Failed to seed teams: %v", err)
		}
	}
}

func TestGetUserTeamIDs(t *testing.T) {
	db := setupTestDB(t)
	seedTeams(t, db)

	ids, err := NewMatchRepository(db).GetUserTeamIDs(1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Captaincy and accepted membership count; a pending invite does not.
	if len(ids) != 2 {
		t.Fatalf("Expected 2 team IDs, got %v", ids)
	}
	set := teamIDSet(ids)
	if !set[10] || !set[11] || set[12] {
		t.Errorf("Expected teams 10 and 11, got %v", ids)
	}
}

func TestGetMyStats(t *testing.T) {
	db := setupTestDB(t)
	seedTeams(t, db)

	matches := []Match{
		{TournamentID: uintPtr(1), TeamAID: 10, TeamBID: 20, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished},
		{TournamentID: uintPtr(1), TeamAID: 20, TeamBID: 11, ScoreA: intPtr(2), ScoreB: intPtr(0), Status: StatusFinished},
		{TournamentID: uintPtr(2), TeamAID: 10, TeamBID: 30, Status: StatusScheduled},
		{TournamentID: uintPtr(2), TeamAID: 10, TeamBID: 30, ScoreA: intPtr(5), ScoreB: intPtr(2), Status: StatusFinished},
	}
	if err := db.Create(&matches).Error; err != nil {
		t.Fatalf("Failed to create matches: %v", err)
	}

	controller := newController(db)
	w := httptest.NewRecorder()
	controller.GetMyStats(authedContext(t, w, 1, "/users/me/stats"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data StatsResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data.TotalMatches != 4 {
		t.Errorf("Expected 4 total matches, got %d", resp.Data.TotalMatches)
	}
	if resp.Data.Wins != 2 || resp.Data.Losses != 1 {
		t.Errorf("Expected 2 wins, 1 loss; got %d, %d", resp.Data.Wins, resp.Data.Losses)
	}
	if resp.Data.WinRate != 50 {
		t.Errorf("Expected win rate 50, got %v", resp.Data.WinRate)
	}
}

func TestGetMyStatsNoMatches(t *testing.T) {
	db := setupTestDB(t)

	controller := newController(db)
	w := httptest.NewRecorder()
	controller.GetMyStats(authedContext(t, w, 1, "/users/me/stats"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data StatsResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data.TotalMatches != 0 || resp.Data.WinRate != 0 {
		t.Errorf("Expected zeroed stats, got %+v", resp.Data)
	}
}

func TestGetMyStatsTournamentFilter(t *testing.T) {
	db := setupTestDB(t)
	seedTeams(t, db)

	matches := []Match{
		{TournamentID: uintPtr(1), TeamAID: 10, TeamBID: 20, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished},
		{TournamentID: uintPtr(2), TeamAID: 10, TeamBID: 30, ScoreA: intPtr(0), ScoreB: intPtr(1), Status: StatusFinished},
	}
	if err := db.Create(&matches).Error; err != nil {
		t.Fatalf("Failed to create matches: %v", err)
	}

	controller := newController(db)
	w := httptest.NewRecorder()
	controller.GetMyStats(authedContext(t, w, 1, "/users/me/stats?tournament_id=1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Data StatsResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data.TotalMatches != 1 || resp.Data.Wins != 1 || resp.Data.Losses != 0 {
		t.Errorf("Expected filtered stats 1/1/0, got %+v", resp.Data)
	}
}

func TestGetMyMatchesResults(t *testing.T) {
	db := setupTestDB(t)
	seedTeams(t, db)

	matches := []Match{
		{TeamAID: 10, TeamBID: 20, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished},
		{TeamAID: 20, TeamBID: 30, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished},
		{TeamAID: 10, TeamBID: 20, Status: StatusScheduled},
	}
	if err := db.Create(&matches).Error; err != nil {
		t.Fatalf("Failed to create matches: %v", err)
	}

	controller := newController(db)
	w := httptest.NewRecorder()
	controller.GetMyMatches(authedContext(t, w, 1, "/users/me/matches"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []MatchView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	// The match between strangers is not included.
	if len(resp.Data) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(resp.Data))
	}
	var withResult, withoutResult int
	for _, mv := range resp.Data {
		if mv.Result != nil {
			withResult++
			if *mv.Result != "won" {
				t.Errorf("Expected won, got %q", *mv.Result)
			}
		} else {
			withoutResult++
		}
	}
	if withResult != 1 || withoutResult != 1 {
		t.Errorf("Expected one decided and one null result, got %d/%d", withResult, withoutResult)
	}
}

func TestGetTournamentHistory(t *testing.T) {
	db := setupTestDB(t)
	seedTeams(t, db)

	regs := registration.Registration{TournamentID: 1, CategoryID: 1, UserID: 1, Status: registration.StatusRegistered}
	if err := db.Create(&regs).Error; err != nil {
		t.Fatalf("Failed to create registration: %v", err)
	}
	matches := []Match{
		{TournamentID: uintPtr(1), TeamAID: 10, TeamBID: 20, ScoreA: intPtr(3), ScoreB: intPtr(1), Status: StatusFinished},
		{TournamentID: uintPtr(1), TeamAID: 10, TeamBID: 20, ScoreA: intPtr(0), ScoreB: intPtr(2), Status: StatusFinished},
	}
	if err := db.Create(&matches).Error; err != nil {
		t.Fatalf("Failed to create matches: %v", err)
	}

	controller := newController(db)
	w := httptest.NewRecorder()
	controller.GetTournamentHistory(authedContext(t, w, 1, "/users/me/tournament-history"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []TournamentHistoryEntry `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(resp.Data))
	}
	entry := resp.Data[0]
	if entry.Matches != 2 || entry.Wins != 1 || entry.Losses != 1 {
		t.Errorf("Expected 2/1/1 tallies, got %+v", entry)
	}
}
