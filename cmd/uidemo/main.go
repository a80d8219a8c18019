package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/zeusync/zeusui/internal/core/css"
	"github.com/zeusync/zeusui/internal/core/dom"
	"github.com/zeusync/zeusui/internal/core/observability/log"
	"github.com/zeusync/zeusui/sdk/go/ui"
)

type active struct{}

var (
	card = css.Inline(
		css.Prop(css.Display, css.Keyword("flex")),
		css.Prop(css.Gap, css.Rem(1)),
		css.Prop(css.Padding, css.Rem(1)),
	).With(
		css.On(css.Selector{css.Self(), css.Descendant, css.Marked(css.TypeID[active]())},
			css.Prop(css.Color, css.Keyword("crimson"))),
	)
	button = css.Inline(css.Prop(css.Cursor, css.Keyword("pointer"))).With(
		css.Hover(css.Prop(css.Opacity, css.Number(0.8))),
	)
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := ui.DefaultConfig()
	if *configPath != "" {
		loaded, err := ui.LoadConfig(*configPath)
		if err != nil {
			fmt.Println("Error loading config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	rt, err := ui.New(cfg)
	if err != nil {
		fmt.Println("Error creating runtime:", err)
		os.Exit(1)
	}
	defer func() { _ = rt.Close() }()

	buildCounter(rt.App())
	rt.App().Flush()
	fmt.Println(rt.HTML())

	if !rt.MirrorEnabled() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopCh
		cancel()
	}()

	rt.Logger().Info("serving mirror", log.String("addr", cfg.Mirror.Addr), log.String("path", cfg.Mirror.Path))
	if err := rt.Run(ctx); err != nil {
		rt.Logger().Error("runtime stopped", log.Error(err))
		os.Exit(1)
	}
}

// buildCounter mounts a button that counts its clicks and highlights every
// fifth one.
func buildCounter(app *ui.App) {
	count := ui.NewMutable(0)

	label := app.Create("span").
		SetTextSignal(ui.Map(count.Signal(), func(n int) string { return "clicked " + strconv.Itoa(n) + " times" }))
	ui.MarkSignal[active](label, ui.Dedupe(ui.Map(count.Signal(), func(n int) bool { return n > 0 && n%5 == 0 })))

	btn := app.Create("button").
		SetClass(button).
		SetText("+1").
		OnClick(func(*dom.Event) { count.Update(func(n int) int { return n + 1 }) })

	root := app.Create("div").SetClass(card)
	root.AddChild(btn).AddChild(label)
	app.Mount(root)
}
