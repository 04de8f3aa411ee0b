package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"secret-hitler/internal/config"
	"secret-hitler/internal/game"
	"secret-hitler/internal/room"
	"secret-hitler/internal/store"
)

// Self-play driver: seats n random bots, runs a full game through the
// public manager operations and prints the event stream. Useful for eyeballing
// rule changes without a frontend.

type consoleBroadcaster struct{}

func (consoleBroadcaster) Broadcast(roomCode, action string, data interface{}) {
	if action == room.EventStateUpdated {
		return
	}
	fmt.Printf("  [%s] %s %+v\n", roomCode, action, data)
}

func (consoleBroadcaster) BroadcastTo(roomCode string, playerID uuid.UUID, action string, data interface{}) {
	fmt.Printf("  [%s -> %s] %s %+v\n", roomCode, shortID(playerID), action, data)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func main() {
	players := flag.Int("players", 7, "number of players (5-10)")
	seed := flag.Int64("seed", 1, "rng seed")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	cfg := config.Config{RoomCodeLength: 6}
	rm := room.NewManager(store.NewMemoryStore(), cfg, consoleBroadcaster{}, log)
	rm.SeedFn = func() int64 { return *seed }
	rng := rand.New(rand.NewSource(*seed))

	rx, creator, err := rm.CreateRoom("Player-1")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ids := []uuid.UUID{creator.ID}
	for i := 2; i <= *players; i++ {
		p, err := rm.JoinRoom(rx.Code, fmt.Sprintf("Player-%d", i))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		ids = append(ids, p.ID)
	}
	if err := rm.StartGame(rx.Code, creator.ID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for round := 0; round < 200; round++ {
		gs, err := rm.GameState(rx.Code, uuid.Nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		switch gs.Phase {
		case game.PhaseNomination:
			fmt.Printf("\nround %d, president %s\n", gs.RoundNumber, shortID(*gs.PresidentID))
			nominee := gs.EligibleChancellorNominees[rng.Intn(len(gs.EligibleChancellorNominees))]
			must(rm.Nominate(rx.Code, *gs.PresidentID, nominee))

		case game.PhaseElection:
			for _, id := range ids {
				err := rm.CastVote(rx.Code, id, rng.Intn(3) > 0)
				var validation *game.ValidationError
				if err != nil && !errors.As(err, &validation) {
					must(err)
				}
				if resolved, _ := rm.GameState(rx.Code, uuid.Nil); resolved.Phase != game.PhaseElection {
					break
				}
			}

		case game.PhaseLegislativePresident:
			view, err := rm.GameState(rx.Code, *gs.PresidentID)
			must(err)
			must(rm.DiscardPolicy(rx.Code, *gs.PresidentID, view.Hand[rng.Intn(len(view.Hand))]))

		case game.PhaseLegislativeChancellor:
			view, err := rm.GameState(rx.Code, *gs.ChancellorID)
			must(err)
			must(rm.EnactPolicy(rx.Code, *gs.ChancellorID, view.Hand[rng.Intn(len(view.Hand))]))

		case game.PhaseExecutiveAction:
			target := pickTarget(rm, rx.Code, gs, ids, rng)
			_, err := rm.UsePower(rx.Code, *gs.PresidentID, target)
			must(err)

		case game.PhaseGameOver:
			fmt.Printf("\ngame over: %s win (%s)\n", gs.WinningTeam, gs.GameOverReason)
			return
		}
	}
	fmt.Fprintln(os.Stderr, "game did not finish within the round cap")
	os.Exit(1)
}

// pickTarget chooses a random valid target for the pending power; peek
// needs none.
func pickTarget(rm *room.Manager, code string, gs *room.GameView, ids []uuid.UUID, rng *rand.Rand) uuid.UUID {
	if gs.Power == game.PowerPolicyPeek {
		return uuid.Nil
	}
	view, err := rm.RoomState(code)
	must(err)
	investigated := map[uuid.UUID]bool{}
	for _, id := range gs.Investigated {
		investigated[id] = true
	}
	candidates := make([]uuid.UUID, 0, len(ids))
	for _, p := range view.Players {
		if !p.IsAlive || p.ID == *gs.PresidentID {
			continue
		}
		if gs.Power == game.PowerInvestigate && investigated[p.ID] {
			continue
		}
		candidates = append(candidates, p.ID)
	}
	return candidates[rng.Intn(len(candidates))]
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
