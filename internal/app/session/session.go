package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"wildcraft/internal/app/stateview"
	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
	"wildcraft/internal/domain/worldgen"
)

var (
	ErrGameOver          = errors.New("game is over, reset to play again")
	ErrResourceNotOnTile = errors.New("resource not on current tile")
	ErrInvalidDirection  = errors.New("invalid direction")
)

type Rules struct {
	MoveTimeAdvanceChance float64
	WeatherChangeChance   float64
}

func DefaultRules() Rules {
	return Rules{
		MoveTimeAdvanceChance: survival.MoveTimeAdvanceChance,
		WeatherChangeChance:   survival.WeatherChangeChance,
	}
}

type Options struct {
	Catalog *catalog.Catalog
	// Rand drives world generation, movement and weather. Nil seeds from the clock.
	Rand *rand.Rand
	// Rules nil means DefaultRules. A non-nil zero Rules turns both chances off.
	Rules  *Rules
	Logger *slog.Logger
}

// Session owns one game: the world and the player who lives in it. It is not
// safe for concurrent use; a Controller serializes access to it.
type Session struct {
	id       string
	cat      *catalog.Catalog
	gen      worldgen.Generator
	rng      *rand.Rand
	rules    Rules
	log      *slog.Logger
	world    world.GameWorld
	player   survival.PlayerState
	respawns RespawnQueue
	resets   int
}

type Snapshot struct {
	SessionID       string               `json:"session_id"`
	Player          survival.PlayerState `json:"player"`
	Phase           world.Phase          `json:"phase"`
	Section         int                  `json:"section"`
	Biome           world.Biome          `json:"biome"`
	Tile            world.Tile           `json:"tile"`
	StatusEffects   []string             `json:"status_effects"`
	Resets          int                  `json:"resets"`
	PendingRespawns int                  `json:"pending_respawns"`
}

// New creates a session and generates its first world.
func New(id string, opts Options, now time.Time) (*Session, []survival.DomainEvent) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(now.UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rules := DefaultRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	s := &Session{
		id:    id,
		cat:   cat,
		gen:   worldgen.New(rng),
		rng:   rng,
		rules: rules,
		log:   logger.With("session_id", id),
	}
	s.regenerate()
	return s, []survival.DomainEvent{s.event(survival.EventGameStarted, now, map[string]any{
		"section": s.world.CurrentSection,
		"biome":   string(s.biome()),
		"recipes": s.player.Discovered.IDs(),
	})}
}

func (s *Session) ID() string { return s.id }

func (s *Session) regenerate() {
	s.world = s.gen.Generate(s.cat)
	s.player = survival.NewPlayerState(s.cat)
	s.respawns.Reset()
}

// Reset replaces the world and player wholesale. Pending respawns are dropped.
func (s *Session) Reset(now time.Time) []survival.DomainEvent {
	s.resets++
	s.regenerate()
	return []survival.DomainEvent{s.event(survival.EventGameReset, now, map[string]any{
		"resets": s.resets,
		"epoch":  s.respawns.Epoch(),
	})}
}

func (s *Session) Move(dir world.Direction, now time.Time) ([]survival.DomainEvent, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if _, ok := world.ParseDirection(string(dir)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	from := s.player.Position
	to := world.Step(from, dir, s.world.Current().Size())
	s.player.Position = to
	s.player.Exert()
	events := []survival.DomainEvent{s.event(survival.EventMoved, now, map[string]any{
		"direction": string(dir),
		"from":      from,
		"to":        to,
		"vitals":    s.player.Vitals,
	})}
	if !s.player.GameOver && s.rng.Float64() < s.rules.MoveTimeAdvanceChance {
		events = append(events, s.advance(now)...)
	}
	return s.conclude(now, events), nil
}

// Travel moves the player to the origin of another section.
func (s *Session) Travel(section int, now time.Time) ([]survival.DomainEvent, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	sec, err := s.world.Section(section)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, section)
	}
	from := s.world.CurrentSection
	s.world.CurrentSection = section
	s.player.Position = world.Point{}
	s.player.Exert()
	events := []survival.DomainEvent{s.event(survival.EventSectionChanged, now, map[string]any{
		"from":   from,
		"to":     section,
		"biome":  string(sec.Biome),
		"vitals": s.player.Vitals,
	})}
	return s.conclude(now, events), nil
}

// Collect takes a resource instance from the player's tile into the inventory
// and schedules its return after the resource's respawn delay.
func (s *Session) Collect(instanceID string, now time.Time) ([]survival.DomainEvent, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	tile := s.world.Current().Tile(s.player.Position)
	if tile == nil {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotOnTile, instanceID)
	}
	inst, ok := tile.FindResource(instanceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotOnTile, instanceID)
	}
	item, err := s.cat.LookupItem(inst.ResourceID)
	if err != nil {
		return nil, err
	}
	tile.TakeResource(instanceID)

	delay := time.Duration(0)
	if res, ok := s.cat.Resource(inst.ResourceID); ok {
		delay = time.Duration(res.RespawnSeconds) * time.Second
	}
	due := now.Add(delay)
	s.respawns.Schedule(due, s.world.CurrentSection, s.player.Position, inst)

	discovered := s.player.AddItem(s.cat, survival.StackOf(item, 1))
	events := []survival.DomainEvent{s.event(survival.EventResourceCollected, now, map[string]any{
		"instance_id": inst.ID,
		"resource_id": inst.ResourceID,
		"section":     s.world.CurrentSection,
		"at":          s.player.Position,
		"respawn_at":  due,
	})}
	events = s.appendDiscoveries(now, events, discovered)
	return events, nil
}

func (s *Session) Craft(recipeID string, now time.Time) ([]survival.DomainEvent, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	res, err := s.player.Craft(s.cat, recipeID)
	if err != nil {
		if errors.Is(err, survival.ErrUnknownResultItem) {
			s.log.Error("craft aborted: catalog inconsistency", "recipe_id", recipeID, "err", err)
		}
		payload := map[string]any{"recipe_id": recipeID, "reason": err.Error()}
		var short *survival.InsufficientIngredientsError
		if errors.As(err, &short) {
			payload["missing"] = short.Missing
		}
		return []survival.DomainEvent{s.event(survival.EventCraftFailed, now, payload)}, err
	}
	events := []survival.DomainEvent{s.event(survival.EventItemCrafted, now, map[string]any{
		"recipe_id": res.RecipeID,
		"item_id":   res.Produced.ID,
		"quantity":  res.Produced.Quantity,
		"consumed":  res.Consumed,
	})}
	return s.appendDiscoveries(now, events, res.Discovered), nil
}

// Use consumes one unit of a held item. Using an item that is not held does nothing.
func (s *Session) Use(itemID string, now time.Time) ([]survival.DomainEvent, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	res, ok, err := s.player.UseItem(itemID)
	if err != nil || !ok {
		return nil, err
	}
	events := []survival.DomainEvent{s.event(survival.EventItemUsed, now, map[string]any{
		"item_id": res.ItemID,
		"effects": res.Effects,
		"before":  res.Before,
		"after":   res.After,
	})}
	return s.conclude(now, events), nil
}

func (s *Session) Drop(itemID string, qty int, now time.Time) ([]survival.DomainEvent, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	n := s.player.Drop(itemID, qty)
	if n == 0 {
		return nil, nil
	}
	return []survival.DomainEvent{s.event(survival.EventItemDropped, now, map[string]any{
		"item_id":  itemID,
		"quantity": n,
	})}, nil
}

func (s *Session) AdvanceTime(now time.Time) ([]survival.DomainEvent, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.advance(now), nil
}

func (s *Session) advance(now time.Time) []survival.DomainEvent {
	res := s.player.AdvanceTime(s.rng, s.rules.WeatherChangeChance)
	events := []survival.DomainEvent{s.event(survival.EventTimeAdvanced, now, map[string]any{
		"hour":  res.Hour,
		"phase": string(res.Phase),
	})}
	if res.WeatherChanged {
		events = append(events, s.event(survival.EventWeatherChanged, now, map[string]any{
			"weather": string(res.Weather),
		}))
	}
	return events
}

// Decay runs one survival tick. It does nothing once the game is over.
func (s *Session) Decay(now time.Time) []survival.DomainEvent {
	if s.player.GameOver {
		return nil
	}
	res := s.player.DecayTick()
	events := []survival.DomainEvent{s.event(survival.EventVitalsDecayed, now, map[string]any{
		"before":  res.Before,
		"after":   res.After,
		"damaged": res.Damaged,
	})}
	return s.conclude(now, events)
}

// RunRespawns returns every due resource to its tile.
func (s *Session) RunRespawns(now time.Time) []survival.DomainEvent {
	var events []survival.DomainEvent
	for _, task := range s.respawns.Due(now) {
		sec, err := s.world.Section(task.section)
		if err != nil {
			continue
		}
		tile := sec.Tile(task.at)
		if tile == nil {
			continue
		}
		if _, exists := tile.FindResource(task.instance.ID); exists {
			continue
		}
		tile.PutResource(task.instance)
		events = append(events, s.event(survival.EventResourceRespawned, now, map[string]any{
			"instance_id": task.instance.ID,
			"resource_id": task.instance.ResourceID,
			"section":     task.section,
			"at":          task.at,
		}))
	}
	return events
}

// NextRespawn reports when the earliest pending respawn is due.
func (s *Session) NextRespawn() (time.Time, bool) {
	return s.respawns.Next()
}

func (s *Session) Snapshot() Snapshot {
	tile, _ := stateview.CurrentTile(&s.world, s.player.Position)
	return Snapshot{
		SessionID:       s.id,
		Player:          s.player.Clone(),
		Phase:           s.player.Phase(),
		Section:         s.world.CurrentSection,
		Biome:           s.biome(),
		Tile:            tile,
		StatusEffects:   stateview.StatusEffects(s.player),
		Resets:          s.resets,
		PendingRespawns: s.respawns.Len(),
	}
}

// World returns a deep copy of the current world.
func (s *Session) World() world.GameWorld {
	return s.world.Clone()
}

func (s *Session) CurrentSection() world.Section {
	w := s.world.Clone()
	if sec := w.Current(); sec != nil {
		return *sec
	}
	return world.Section{}
}

func (s *Session) Query(itemID string) int {
	return s.player.Inventory.Query(itemID)
}

func (s *Session) biome() world.Biome {
	if sec := s.world.Current(); sec != nil {
		return sec.Biome
	}
	return ""
}

func (s *Session) guard() error {
	if s.player.GameOver {
		return ErrGameOver
	}
	return nil
}

// conclude appends the game-over notice when the events just produced ended the game.
func (s *Session) conclude(now time.Time, events []survival.DomainEvent) []survival.DomainEvent {
	if !s.player.GameOver {
		return events
	}
	s.log.Info("game over", "cause", string(s.player.DeathCause), "hour", s.player.Hour)
	return append(events, s.event(survival.EventGameOver, now, map[string]any{
		"cause":  string(s.player.DeathCause),
		"vitals": s.player.Vitals,
	}))
}

func (s *Session) appendDiscoveries(now time.Time, events []survival.DomainEvent, ids []string) []survival.DomainEvent {
	if len(ids) == 0 {
		return events
	}
	return append(events, s.event(survival.EventRecipesDiscovered, now, map[string]any{
		"recipe_ids": ids,
	}))
}

func (s *Session) event(typ string, now time.Time, payload map[string]any) survival.DomainEvent {
	return survival.DomainEvent{Type: typ, OccurredAt: now, Payload: payload}
}
