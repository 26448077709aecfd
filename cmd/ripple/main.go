// Command ripple is a terminal client for the ripple social feed.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"ripple/internal/config"
	"ripple/internal/identity"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/seed"
	"ripple/internal/service"
	"ripple/internal/store"
)

type app struct {
	identity identity.Provider
	feed     *service.FeedService
	likes    *service.LikeService
	comments *service.CommentService
	posts    *service.PostService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start client: %v", err)
	}

	// Identity changes drive a feed reload, matching how the views
	// react to sign-in and sign-out.
	a.identity.OnChange(func(user *models.User) {
		if user == nil {
			return
		}
		if _, err := a.feed.LoadFeed(ctx, user.ID); err != nil {
			fmt.Fprintf(os.Stderr, "feed reload failed: %v\n", err)
		}
	})

	fmt.Println("ripple — type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		cmdCtx := observability.WithCorrelationID(ctx, uuid.NewString())
		if err := a.run(cmdCtx, line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	var st store.Store
	var provider identity.Provider

	if cfg.DevMode() && cfg.SupabaseURL == "" {
		mem := store.NewMemoryStore()
		users, err := seed.Populate(ctx, mem, seed.DefaultOptions())
		if err != nil {
			return nil, err
		}
		provider = identity.NewStaticProvider(users[0])
		st = mem
		fmt.Printf("dev mode: seeded store, sign in as %s with any token\n", users[0].Name())
	} else {
		dynamo, err := store.NewDynamoStoreFromEnv(ctx, cfg.StoreTable)
		if err != nil {
			return nil, err
		}
		supa, err := identity.NewSupabaseProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, err
		}
		st = dynamo
		provider = supa
	}

	postRepo := repository.NewPostRepository(st)
	likeRepo := repository.NewLikeRepository(st)
	commentRepo := repository.NewCommentRepository(st)

	feed := service.NewFeedService(postRepo)
	return &app{
		identity: provider,
		feed:     feed,
		likes:    service.NewLikeService(likeRepo),
		comments: service.NewCommentService(commentRepo),
		posts:    service.NewPostService(postRepo, likeRepo, commentRepo, feed.Remove),
	}, nil
}

func (a *app) run(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help":
		fmt.Print(helpText)
		return nil
	case "login":
		if rest == "" {
			return fmt.Errorf("usage: login <access-token>")
		}
		user, err := a.identity.SignIn(ctx, rest)
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s\n", user.Name())
		return nil
	case "logout":
		return a.identity.SignOut(ctx)
	case "whoami":
		user := a.identity.Current()
		if user == nil {
			fmt.Println("anonymous")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Name(), user.Email)
		return nil
	case "feed":
		return a.showFeed(ctx, service.SortMode(rest), false)
	case "mine":
		return a.showFeed(ctx, service.SortNewest, true)
	case "like":
		return a.toggleLike(ctx, rest)
	case "comments":
		return a.showComments(ctx, rest)
	case "comment":
		postID, text, _ := strings.Cut(rest, " ")
		return a.submitComment(ctx, postID, text)
	case "post":
		title, description, _ := strings.Cut(rest, "::")
		return a.createPost(ctx, strings.TrimSpace(title), strings.TrimSpace(description))
	case "delete":
		return a.deletePost(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func (a *app) viewer() *models.User {
	return a.identity.Current()
}

func (a *app) showFeed(ctx context.Context, mode service.SortMode, own bool) error {
	viewer := a.viewer()
	if viewer == nil {
		fmt.Println("Login to view the posts")
		return nil
	}

	var posts []models.Post
	var err error
	if own {
		posts, err = a.feed.LoadOwn(ctx, viewer.ID)
	} else {
		posts, err = a.feed.LoadFeed(ctx, viewer.ID)
	}
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		if own {
			fmt.Println("You have not posted yet")
		} else {
			fmt.Println("No posts available")
		}
		return nil
	}

	if mode == "" {
		mode = service.SortNewest
	}
	for _, post := range service.SortPosts(posts, mode) {
		a.renderPost(ctx, post, viewer)
	}
	return nil
}

func (a *app) renderPost(ctx context.Context, post models.Post, viewer *models.User) {
	if _, err := a.likes.LoadLikes(ctx, post.ID); err != nil {
		fmt.Printf("  (likes unavailable: %v)\n", err)
	}

	marker := " "
	if a.likes.Liked(post.ID, viewer.ID) {
		marker = "*"
	}
	when := models.FormatCreatedAt(post.CreatedAt, time.Now())
	fmt.Printf("[%s] %s — @%s %s\n", post.ID, post.Title, post.Username, when)
	fmt.Printf("    %s\n", post.Description)
	fmt.Printf("    likes: %d%s\n", a.likes.Count(post.ID), marker)
}

func (a *app) toggleLike(ctx context.Context, postID string) error {
	viewer := a.viewer()
	if viewer == nil {
		return fmt.Errorf("sign in first")
	}
	if postID == "" {
		return fmt.Errorf("usage: like <post-id>")
	}
	if _, err := a.likes.LoadLikes(ctx, postID); err != nil {
		return err
	}
	if err := a.likes.Toggle(ctx, postID, viewer.ID); err != nil {
		return err
	}
	state := "unliked"
	if a.likes.Liked(postID, viewer.ID) {
		state = "liked"
	}
	fmt.Printf("%s (%d likes)\n", state, a.likes.Count(postID))
	return nil
}

func (a *app) showComments(ctx context.Context, postID string) error {
	if postID == "" {
		return fmt.Errorf("usage: comments <post-id>")
	}
	comments, err := a.comments.Expand(ctx, postID)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		fmt.Println("No comments yet")
		return nil
	}
	for _, comment := range comments {
		when := models.FormatCreatedAt(comment.CreatedAt, time.Now())
		fmt.Printf("  @%s %s: %s\n", comment.Username, when, comment.Text)
	}
	return nil
}

func (a *app) submitComment(ctx context.Context, postID, text string) error {
	viewer := a.viewer()
	if viewer == nil {
		return fmt.Errorf("you must be logged in to comment")
	}
	if postID == "" {
		return fmt.Errorf("usage: comment <post-id> <text>")
	}
	_, err := a.comments.Submit(ctx, service.SubmitCommentInput{
		PostID:   postID,
		ViewerID: viewer.ID,
		Username: viewer.Name(),
		Text:     text,
	})
	if err != nil {
		return err
	}
	fmt.Println("comment posted")
	return nil
}

func (a *app) createPost(ctx context.Context, title, description string) error {
	viewer := a.viewer()
	if viewer == nil {
		return fmt.Errorf("sign in first")
	}
	post, err := a.posts.CreatePost(ctx, service.CreatePostInput{
		ViewerID:    viewer.ID,
		Username:    viewer.Name(),
		Title:       title,
		Description: description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("posted %s\n", post.ID)
	return nil
}

func (a *app) deletePost(ctx context.Context, postID string) error {
	viewer := a.viewer()
	if viewer == nil {
		return fmt.Errorf("sign in first")
	}
	if postID == "" {
		return fmt.Errorf("usage: delete <post-id>")
	}
	for _, post := range a.feed.Posts() {
		if post.ID == postID {
			if err := a.posts.DeletePost(ctx, post, viewer.ID); err != nil {
				return err
			}
			fmt.Println("post deleted")
			return nil
		}
	}
	return fmt.Errorf("post %s is not in the loaded feed", postID)
}

const helpText = `commands:
  login <token>            sign in with an access token
  logout                   sign out
  whoami                   show the current viewer
  feed [newest|oldest|random]
  mine                     your own posts
  like <post-id>           toggle your like
  comments <post-id>       expand a comment thread
  comment <post-id> <text> add a comment
  post <title> :: <description>
  delete <post-id>         delete your post and its likes/comments
  quit
`
