// Package bot wires the Telegram transport, the ingredient lookup, the
// analysis core and the pending-explanation cache into the two-step chat
// flow: first the verdict, then an explanation behind a button.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/comedolab/comedo/pkg/comedo"
	"github.com/comedolab/comedo/pkg/comedo/internalerr"

	"github.com/comedolab/comedo/internal/cache"
	"github.com/comedolab/comedo/internal/lookup"
	"github.com/comedolab/comedo/internal/render"
	"github.com/comedolab/comedo/internal/telegram"
)

// callbackPrefix tags explanation buttons; the rest of the data is the
// cache token.
const callbackPrefix = "explain:"

// Bot runs the chat flow.
type Bot struct {
	tg          *telegram.Client
	lookup      *lookup.Client
	analyzer    *comedo.Analyzer
	cache       cache.Store
	pollTimeout int

	// inflight de-duplicates explanation requests per token while one is
	// already being prepared.
	mu       sync.Mutex
	inflight map[string]struct{}
}

// Options configures a Bot.
type Options struct {
	Telegram       *telegram.Client
	Lookup         *lookup.Client
	Analyzer       *comedo.Analyzer
	Cache          cache.Store
	PollTimeoutSec int
}

// New creates a Bot.
func New(opts Options) *Bot {
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = comedo.New(comedo.Options{})
	}
	timeout := opts.PollTimeoutSec
	if timeout <= 0 {
		timeout = 50
	}
	return &Bot{
		tg:          opts.Telegram,
		lookup:      opts.Lookup,
		analyzer:    analyzer,
		cache:       opts.Cache,
		pollTimeout: timeout,
		inflight:    make(map[string]struct{}),
	}
}

// Run long-polls for updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	log.Println("comedo bot started")

	var offset int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := b.tg.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("getUpdates: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			b.handleUpdate(ctx, u)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, u telegram.Update) {
	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, *u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(ctx, *u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg telegram.Message) {
	chatID := msg.Chat.ID

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	switch text {
	case "/start":
		b.send(ctx, chatID, render.Start, nil)
		return
	case "/help":
		b.send(ctx, chatID, render.Help, nil)
		return
	case "/about":
		b.send(ctx, chatID, render.About, nil)
		return
	case "/base":
		b.send(ctx, chatID, render.BaseList(b.analyzer.Policy()), nil)
		return
	}
	if strings.HasPrefix(text, "/") {
		return
	}
	if text == "" {
		b.send(ctx, chatID, render.ErrEmpty, nil)
		return
	}

	b.runStep1(ctx, chatID, text, nil)
}

func (b *Bot) handlePhoto(ctx context.Context, msg telegram.Message) {
	chatID := msg.Chat.ID

	// Largest size comes last.
	photo := msg.Photo[len(msg.Photo)-1]
	image, err := b.tg.DownloadPhoto(ctx, photo.FileID)
	if err != nil {
		log.Printf("photo download: %v", err)
		b.send(ctx, chatID, render.ErrGeneral, nil)
		return
	}

	b.runStep1(ctx, chatID, "", image)
}

// runStep1 performs lookup, analysis and the first reply.
func (b *Bot) runStep1(ctx context.Context, chatID int64, productName string, image []byte) {
	processing := render.ProcessingText
	if len(image) > 0 {
		processing = render.ProcessingPhoto
	}
	status, statusErr := b.tg.SendMessage(ctx, chatID, processing, nil)

	res, err := b.lookup.Ingredients(ctx, productName, image)
	if err != nil {
		log.Printf("lookup: %v", err)
		b.deleteStatus(ctx, chatID, status, statusErr)
		b.send(ctx, chatID, render.ErrGeneral, nil)
		return
	}

	name := res.ProductName
	if name == "" {
		name = productName
	}

	if res.NoINCI() {
		b.deleteStatus(ctx, chatID, status, statusErr)
		b.send(ctx, chatID, render.NoINCI(name), nil)
		return
	}

	report := b.analyzer.Analyze(res.Ingredients, res.SourceURL)
	answer := render.Step1(name, report)

	var markup *telegram.InlineKeyboardMarkup
	token, err := b.cache.Put(ctx, cache.Pending{
		ProductName: name,
		Risk:        report.Risk,
		SourceURL:   report.SourceURL,
		Ingredients: report.Ingredients,
	})
	if err != nil {
		// Without a token the result still goes out, just without the
		// explanation button.
		log.Printf("cache put: %v", err)
	} else {
		markup = explainKeyboard(token)
	}

	b.deleteStatus(ctx, chatID, status, statusErr)
	b.send(ctx, chatID, answer, markup)
}

func (b *Bot) handleCallback(ctx context.Context, cb telegram.CallbackQuery) {
	if !strings.HasPrefix(cb.Data, callbackPrefix) {
		return
	}
	token := strings.TrimPrefix(cb.Data, callbackPrefix)

	pending, err := b.cache.Get(ctx, token)
	if err != nil || cb.Message == nil {
		if err != nil && !errors.Is(err, internalerr.ErrNotFound) && !errors.Is(err, internalerr.ErrExpired) {
			log.Printf("cache get: %v", err)
		}
		if err := b.tg.AnswerCallback(ctx, cb.ID, render.ButtonStale, true); err != nil {
			log.Printf("answerCallback: %v", err)
		}
		return
	}

	if !b.begin(token) {
		if err := b.tg.AnswerCallback(ctx, cb.ID, render.ButtonBusy, false); err != nil {
			log.Printf("answerCallback: %v", err)
		}
		return
	}

	if err := b.tg.AnswerCallback(ctx, cb.ID, "", false); err != nil {
		log.Printf("answerCallback: %v", err)
	}

	chatID := cb.Message.Chat.ID
	b.send(ctx, chatID, render.ProcessingExplain, nil)

	go b.explain(ctx, chatID, pending, token)
}

// explain runs the step-2 lookup in the background and sends the result.
func (b *Bot) explain(ctx context.Context, chatID int64, pending cache.Pending, token string) {
	defer b.end(token)
	defer func() {
		if err := b.cache.Delete(ctx, token); err != nil {
			log.Printf("cache delete: %v", err)
		}
	}()

	payload, err := json.Marshal(pending)
	if err != nil {
		log.Printf("encode pending: %v", err)
		b.send(ctx, chatID, render.ErrExplain, nil)
		return
	}

	expl, err := b.lookup.Explain(ctx, payload)
	if err != nil {
		log.Printf("explain lookup: %v", err)
		b.send(ctx, chatID, render.ErrExplain, nil)
		return
	}

	b.send(ctx, chatID, render.Step2(expl, pending.ProductName, pending.Risk, b.analyzer.Policy()), nil)
}

func (b *Bot) begin(token string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.inflight[token]; busy {
		return false
	}
	b.inflight[token] = struct{}{}
	return true
}

func (b *Bot) end(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, token)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) {
	if _, err := b.tg.SendMessage(ctx, chatID, text, markup); err != nil {
		log.Printf("sendMessage: %v", err)
	}
}

func (b *Bot) deleteStatus(ctx context.Context, chatID int64, status telegram.Message, statusErr error) {
	if statusErr != nil {
		return
	}
	if err := b.tg.DeleteMessage(ctx, chatID, status.MessageID); err != nil {
		log.Printf("deleteMessage: %v", err)
	}
}

func explainKeyboard(token string) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: render.ExplainButton, CallbackData: callbackPrefix + token}},
		},
	}
}
