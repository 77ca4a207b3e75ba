// Command codekeep is a terminal dashboard for the CodeKeep API. It is
// composition only: every command is an API call followed by a store
// update and a re-render of the filtered view.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NoteLegend/CodeKeep/pkg/appstate"
	"github.com/NoteLegend/CodeKeep/pkg/client"
	"github.com/NoteLegend/CodeKeep/pkg/dto"
	"github.com/joho/godotenv"
)

func sessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "codekeep", "session.json")
}

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("CODEKEEP_API_URL")

	store := appstate.New()
	api := client.New(baseURL)

	path := sessionPath()
	if err := store.Load(path); err != nil {
		log.Printf("Could not restore session: %v", err)
	}

	api.OnAuthFailure = func() {
		store.Logout()
		_ = appstate.ClearSaved(path)
		fmt.Println("Session expired, please log in again.")
	}

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	if snap := store.Snapshot(); snap.IsAuthenticated {
		api.SetToken(snap.Token)
	} else if err := authenticate(ctx, in, api, store, path); err != nil {
		log.Fatalf("Authentication failed: %v", err)
	}

	if err := initialFetch(ctx, api, store); err != nil {
		log.Fatalf("Initial fetch failed: %v", err)
	}
	store.Refilter()

	fmt.Println(`Type "help" for commands.`)
	render(store)
	repl(ctx, in, api, store, path)
}

func authenticate(ctx context.Context, in *bufio.Scanner, api *client.Client, store *appstate.Store, path string) error {
	mode := prompt(in, "login or register? ")
	email := prompt(in, "email: ")
	password := prompt(in, "password: ")

	if mode == "register" {
		name := prompt(in, "name: ")
		user, err := api.Register(ctx, name, email, password)
		if err != nil {
			return err
		}
		store.SetUser(user)
	} else {
		user, err := api.Login(ctx, email, password)
		if err != nil {
			return err
		}
		store.SetUser(user)
	}

	store.SetToken(api.Token())
	return store.Save(path)
}

// initialFetch loads collections and snippets in parallel and waits for
// both before the first render.
func initialFetch(ctx context.Context, api *client.Client, store *appstate.Store) error {
	errs := make(chan error, 2)

	go func() {
		collections, err := api.ListCollections(ctx)
		if err == nil {
			store.SetCollections(collections)
		}
		errs <- err
	}()
	go func() {
		snippets, err := api.ListSnippets(ctx, client.SnippetListOptions{})
		if err == nil {
			store.SetSnippets(snippets)
		}
		errs <- err
	}()

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			return err
		}
	}
	return nil
}

func repl(ctx context.Context, in *bufio.Scanner, api *client.Client, store *appstate.Store, path string) {
	for {
		line := prompt(in, "> ")
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch cmd {
		case "help":
			printHelp()
		case "list":
			render(store)
		case "show":
			err = show(store, arg)
		case "fav":
			err = toggleFavorite(ctx, api, store, arg)
		case "newc":
			err = newCollection(ctx, api, store, arg)
		case "new":
			err = newSnippet(ctx, in, api, store)
		case "rm":
			err = deleteSnippet(ctx, api, store, arg)
		case "use":
			err = selectCollection(store, arg)
		case "tag":
			store.SetFilter(withTag(store.Filter(), arg))
			render(store)
		case "search":
			store.SetFilter(withSearch(store.Filter(), arg))
			render(store)
		case "favs":
			f := store.Filter()
			f.FavoritesOnly = !f.FavoritesOnly
			store.SetFilter(f)
			render(store)
		case "sidebar":
			snap := store.Snapshot()
			store.SetSidebarOpen(!snap.SidebarOpen)
			render(store)
		case "logout":
			store.Logout()
			api.SetToken("")
			_ = appstate.ClearSaved(path)
			fmt.Println("Logged out.")
			return
		case "quit", "exit", "":
			return
		default:
			fmt.Println("Unknown command; type \"help\".")
		}
		if err != nil {
			store.SetError(err.Error())
			fmt.Println("Error:", err)
			store.ClearError()
		}
	}
}

func printHelp() {
	fmt.Print(`Commands:
  list           re-render the filtered snippet list
  show N         show snippet N from the list
  fav N          toggle favorite on snippet N
  new            create a snippet (interactive)
  newc NAME      create a collection
  rm N           delete snippet N
  use NAME       select collection by name (empty to clear)
  tag T          filter by tag substring (empty to clear)
  search Q       free-text filter (empty to clear)
  favs           toggle favorites-only filter
  sidebar        toggle the collections sidebar
  logout / quit
`)
}

func render(store *appstate.Store) {
	store.Refilter()
	snap := store.Snapshot()

	if snap.SidebarOpen {
		fmt.Println("Collections:")
		for _, c := range snap.Collections {
			marker := "  "
			if snap.SelectedCollection != nil && snap.SelectedCollection.ID == c.ID {
				marker = "* "
			}
			fmt.Printf("  %s%s\n", marker, c.Name)
		}
	}

	fmt.Printf("Snippets (%d):\n", len(snap.FilteredSnippets))
	for i, sn := range snap.FilteredSnippets {
		star := " "
		if sn.IsFavorite {
			star = "★"
		}
		collection := "-"
		if sn.Collection != nil {
			collection = sn.Collection.Name
		}
		fmt.Printf("  %2d. %s %s [%s] (%s)\n", i+1, star, sn.Title, sn.Language, collection)
	}
}

func snippetAt(store *appstate.Store, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(store.Snapshot().FilteredSnippets) {
		return 0, fmt.Errorf("no such snippet: %q", arg)
	}
	return n - 1, nil
}

func show(store *appstate.Store, arg string) error {
	i, err := snippetAt(store, arg)
	if err != nil {
		return err
	}
	sn := store.Snapshot().FilteredSnippets[i]
	store.SelectSnippet(&sn)

	fmt.Printf("%s [%s]\n", sn.Title, sn.Language)
	if len(sn.Tags) > 0 {
		fmt.Println("tags:", strings.Join(sn.Tags, ", "))
	}
	if sn.Explanation != nil && *sn.Explanation != "" {
		fmt.Println(*sn.Explanation)
	}
	fmt.Println(sn.Code)
	return nil
}

func toggleFavorite(ctx context.Context, api *client.Client, store *appstate.Store, arg string) error {
	i, err := snippetAt(store, arg)
	if err != nil {
		return err
	}
	sn := store.Snapshot().FilteredSnippets[i]

	updated, err := api.ToggleFavorite(ctx, sn.ID)
	if err != nil {
		return err
	}
	store.UpdateSnippet(*updated)
	render(store)
	return nil
}

func newCollection(ctx context.Context, api *client.Client, store *appstate.Store, name string) error {
	if name == "" {
		return fmt.Errorf("usage: newc NAME")
	}
	collection, err := api.CreateCollection(ctx, name)
	if err != nil {
		return err
	}
	store.AddCollection(*collection)
	render(store)
	return nil
}

func newSnippet(ctx context.Context, in *bufio.Scanner, api *client.Client, store *appstate.Store) error {
	snap := store.Snapshot()
	if len(snap.Collections) == 0 {
		return fmt.Errorf("create a collection first (newc NAME)")
	}

	req := dto.CreateSnippetRequest{
		Title:    prompt(in, "title: "),
		Language: prompt(in, "language: "),
		Code:     prompt(in, "code: "),
	}
	if tags := prompt(in, "tags (comma separated): "); tags != "" {
		req.Tags = strings.Split(tags, ",")
	}

	name := prompt(in, "collection: ")
	for _, c := range snap.Collections {
		if strings.EqualFold(c.Name, name) {
			req.Collection = c.ID.String()
			break
		}
	}
	if req.Collection == "" {
		return fmt.Errorf("no such collection: %q", name)
	}

	snippet, err := api.CreateSnippet(ctx, req)
	if err != nil {
		return err
	}
	store.AddSnippet(*snippet)
	render(store)
	return nil
}

func deleteSnippet(ctx context.Context, api *client.Client, store *appstate.Store, arg string) error {
	i, err := snippetAt(store, arg)
	if err != nil {
		return err
	}
	sn := store.Snapshot().FilteredSnippets[i]

	if err := api.DeleteSnippet(ctx, sn.ID); err != nil {
		return err
	}
	store.DeleteSnippet(sn.ID)
	render(store)
	return nil
}

func selectCollection(store *appstate.Store, name string) error {
	if name == "" {
		store.SelectCollection(nil)
		render(store)
		return nil
	}
	for _, c := range store.Snapshot().Collections {
		if strings.EqualFold(c.Name, name) {
			sel := c
			store.SelectCollection(&sel)
			render(store)
			return nil
		}
	}
	return fmt.Errorf("no such collection: %q", name)
}

func withTag(f appstate.Filter, tag string) appstate.Filter {
	f.Tag = tag
	return f
}

func withSearch(f appstate.Filter, search string) appstate.Filter {
	f.Search = search
	return f
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
