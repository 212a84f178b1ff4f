/* main.go
 * The "main" method for running the bot. Wires the session store, the backend client,
 * the API facade, the Discord bot and the webhook listener together.
 * Usage: go run main.go -apiUrl="<url>" [-webhookAddr=":8080"]
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"patota-bot/api/api"
	"patota-bot/api/client"
	"patota-bot/api/store"
	"patota-bot/bot"
	"patota-bot/web"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()

	// Flags
	apiURLPtr := flag.String("apiUrl", "", "Patota backend base URL, e.g. https://api.patota.app (falls back to PATOTA_API_URL)")
	dbNamePtr := flag.String("db", "patota", "MongoDB database name for the session store")
	webhookAddrPtr := flag.String("webhookAddr", "", "Listen address for the match webhook, e.g. :8080. Empty disables the listener")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")

	flag.Parse()

	if err != nil {
		log.Println("No .env file loaded, relying on environment")
	}

	var discordToken string
	switch *testPtr {
	case "false": // Load production bot token
		discordToken = os.Getenv("DISCORD_PROD_TOKEN")
	case "true":
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	default:
		log.Fatal("Invalid \"test\" flag. Should be true or false")
	}

	apiURL := *apiURLPtr
	if apiURL == "" {
		apiURL = os.Getenv("PATOTA_API_URL")
	}
	if apiURL == "" {
		log.Fatal("No backend URL given, set -apiUrl or PATOTA_API_URL")
	}

	sessions, err := store.NewStore(*dbNamePtr, os.Getenv("MONGO_PROD_URI"))
	if err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}
	defer func() {
		if err = sessions.Client.Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	backend, err := client.NewClient(apiURL, sessions)
	if err != nil {
		log.Fatalf("failed to initialize backend client: %v", err)
	}

	apiPtr, err := api.NewAPI(backend, sessions)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}

	patotaBot, err := bot.NewBot(discordToken, apiPtr)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	patotaBot.AnnounceChannelID = os.Getenv("ANNOUNCE_CHANNEL_ID")

	// The webhook listener is optional; without it the bot still works, server-side
	// changes just are not announced until the next $status
	if *webhookAddrPtr != "" {
		go func() {
			cfg := web.Config{
				Addr:     *webhookAddrPtr,
				API:      apiPtr,
				GroupID:  sessions.DefaultGroupID(),
				Announce: patotaBot.Announce,
			}
			if err := web.Start(cfg); err != nil {
				log.Println("webhook listener stopped:", err)
			}
		}()
	}

	if err := patotaBot.Run(); err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}
