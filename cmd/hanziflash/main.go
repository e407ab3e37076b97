package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hanziflash/hanziflash/internal/api"
	"github.com/hanziflash/hanziflash/internal/config"
	"github.com/hanziflash/hanziflash/internal/featuregate"
	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/services"
	"github.com/hanziflash/hanziflash/internal/session"
	"github.com/hanziflash/hanziflash/internal/stores"
	storagesqlite "github.com/hanziflash/hanziflash/internal/storage/sqlite"
)

const usage = `hanziflash - language-learning flashcards

Usage:
  hanziflash login -email <email> -password <password>
  hanziflash logout
  hanziflash list [-topic <id>] [-level <id>] [-page <n>] [-size <n>]
  hanziflash topics
  hanziflash levels
  hanziflash bookmark <card-id>
  hanziflash me
  hanziflash refresh
  hanziflash level [<id>]
`

type app struct {
	repo     *session.Repository
	gate     *featuregate.Gate
	users    *stores.UserStore
	cards    *stores.FlashcardStore
	settings *stores.SettingsStore
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	store, err := storagesqlite.Open(cfg.SessionDBPath)
	if err != nil {
		log.Error("failed to open session store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	repo := session.NewRepository(store)

	// A forced logout in a CLI has nothing to navigate; just tell the user.
	navigator := api.NavigatorFunc(func() {
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	})

	client := api.New(cfg.APIBase, repo,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRetryDelay(cfg.RetryDelay),
		api.WithNavigator(navigator),
	)

	a := &app{
		repo:     repo,
		gate:     featuregate.New(repo),
		users:    stores.NewUserStore(services.NewAuthService(client), services.NewUserService(client), repo),
		cards:    stores.NewFlashcardStore(services.NewFlashcardService(client)),
		settings: stores.NewSettingsStore(repo),
	}
	a.users.LoadSession()
	a.settings.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := a.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.users.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "list":
		return a.cmdList(ctx, args)
	case "topics":
		return a.cmdTopics(ctx)
	case "levels":
		return a.cmdLevels(ctx)
	case "bookmark":
		return a.cmdBookmark(ctx, args)
	case "me":
		return a.cmdMe()
	case "refresh":
		return a.cmdRefresh(ctx)
	case "level":
		return a.cmdLevel(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	if err := a.users.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("%s", a.users.Err())
	}
	fmt.Printf("welcome, %s\n", a.users.User().Name)
	return nil
}

func (a *app) cmdList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	topic := fs.String("topic", "", "filter by topic")
	level := fs.String("level", "", "filter by level")
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// The persisted global level applies when no explicit filter is given.
	if *level == "" {
		*level = a.settings.GlobalLevel()
	}

	err := a.cards.FetchAll(ctx, services.FlashcardListParams{
		Topic:    *topic,
		Level:    *level,
		Page:     *page,
		PageSize: *size,
	})
	if err != nil {
		return fmt.Errorf("%s", a.cards.Err())
	}

	meta := a.cards.Meta()
	premiumOK := a.gate.CanAccess(featuregate.FeaturePremiumContent)
	for _, card := range a.cards.Items() {
		marker := " "
		if a.users.IsBookmarked(card.ID) {
			marker = "*"
		}
		if card.IsPremium && !premiumOK {
			fmt.Printf("%s %-8s [%s/%s] (premium - upgrade to view)\n", marker, card.ID, card.Topic, card.Level)
			continue
		}
		fmt.Printf("%s %-8s [%s/%s] %s (%s) - %s\n",
			marker, card.ID, card.Topic, card.Level,
			card.Content.Hanzi, card.Content.Pinyin, card.Content.Meanings.EN)
	}
	fmt.Printf("page %d/%d, %d cards total\n", meta.Page, meta.TotalPages, meta.Total)
	return nil
}

func (a *app) cmdTopics(ctx context.Context) error {
	a.cards.FetchTopicsAndLevels(ctx)
	topics := a.cards.Topics()
	if len(topics) == 0 {
		return fmt.Errorf("no topics available")
	}
	for _, topic := range topics {
		fmt.Printf("%-10s %s\n", topic.ID, topic.Label)
	}
	return nil
}

func (a *app) cmdLevels(ctx context.Context) error {
	a.cards.FetchTopicsAndLevels(ctx)
	levels := a.cards.Levels()
	if len(levels) == 0 {
		return fmt.Errorf("no levels available")
	}
	for _, level := range levels {
		fmt.Printf("%-10s %s\n", level.ID, level.Label)
	}
	return nil
}

func (a *app) cmdBookmark(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("bookmark requires exactly one card ID")
	}
	cardID := args[0]

	if err := a.users.ToggleBookmark(ctx, cardID); err != nil {
		return err
	}
	if a.users.IsBookmarked(cardID) {
		fmt.Printf("bookmarked %s\n", cardID)
	} else {
		fmt.Printf("removed bookmark %s\n", cardID)
	}
	return nil
}

func (a *app) cmdMe() error {
	u := a.users.User()
	if u == nil {
		return fmt.Errorf("not logged in")
	}
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	fmt.Printf("role: %s\n", a.repo.Role())
	if st := a.users.Streak(); st != nil {
		fmt.Printf("streak: %d (best %d, updated %s)\n", st.Current, st.Best, st.LastUpdated)
	}
	if badges := a.users.Badges(); len(badges) > 0 {
		fmt.Println("badges:")
		for _, b := range badges {
			fmt.Printf("  %s - %s\n", b.Name, b.Description)
		}
	}
	if bookmarks := a.users.Bookmarks(); len(bookmarks) > 0 {
		fmt.Printf("bookmarks: %v\n", bookmarks)
	}
	return nil
}

func (a *app) cmdRefresh(ctx context.Context) error {
	if !a.users.LoggedIn() {
		return fmt.Errorf("not logged in")
	}
	a.users.FetchProfile(ctx)
	a.users.RefreshMeta(ctx)
	fmt.Println("refreshed profile, bookmarks, streak and badges")
	return a.cmdMe()
}

func (a *app) cmdLevel(args []string) error {
	if len(args) == 0 {
		if !a.settings.HasGlobalLevel() {
			fmt.Println("no global level set")
			return nil
		}
		fmt.Println(a.settings.GlobalLevel())
		return nil
	}

	level := args[0]
	if level == "none" {
		level = ""
	}
	a.settings.SetGlobalLevel(level)
	if level == "" {
		fmt.Println("global level cleared")
	} else {
		fmt.Printf("global level set to %s\n", level)
	}
	return nil
}
