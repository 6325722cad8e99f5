package error_notificator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Infra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewInfra — бот для алертов по ADMIN_BOT_TOKEN/ADMIN_CHAT_ID.
// Без конфигурации работает как no-op, это не обязательная часть сервиса.
func NewInfra() *Infra {
	token := os.Getenv("ADMIN_BOT_TOKEN")
	chatStr := os.Getenv("ADMIN_CHAT_ID")
	if token == "" || chatStr == "" {
		return &Infra{}
	}

	chatID, err := strconv.ParseInt(chatStr, 10, 64)
	if err != nil {
		log.Printf("[error_notificator] bad ADMIN_CHAT_ID: %v", err)
		return &Infra{}
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("[error_notificator] bot init failed: %v", err)
		return &Infra{}
	}

	return &Infra{bot: bot, chatID: chatID}
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	if i.bot == nil {
		return nil
	}

	text := fmt.Sprintf(
		"❗ pdf_zipper: ошибка окружения\n\nОшибка: %v\n\nДетали: %s",
		err,
		details,
	)

	msg := tgbotapi.NewMessage(i.chatID, text)

	_, sendErr := i.bot.Send(msg)
	if sendErr != nil {
		log.Printf("[error_notificator] send fail: %v", sendErr)
		return sendErr
	}

	return nil
}
