/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/fencingpool-tdbot/internal"
	"github.com/mikeb26/fencingpool-tdbot/objstore"
	"github.com/mikeb26/fencingpool-tdbot/poolstore"
	"github.com/mikeb26/fencingpool-tdbot/usafencing"
)

const (
	BotTokenEnvVar  = "DISCORD_BOT_TOKEN"
	PublicKeyEnvVar = "DISCORD_PUBLIC_KEY"
	AppIdEnvVar     = "DISCORD_APP_ID"
	// CmdIdEnvVar and CmdHashEnvVar describe the current /pool registration;
	// the command is created when the id is unset
	CmdIdEnvVar   = "DISCORD_CMD_ID"
	CmdHashEnvVar = "DISCORD_CMD_HASH"
)

var (
	botPubKey ed25519.PublicKey
	botAppId  string
	client    *discordgo.Session

	// pools and tieBreak are set up by main before serving
	pools    *poolstore.Store[usafencing.Fencer]
	tieBreak string
)

type TopLevelCommand string

const PoolCmd TopLevelCommand = "pool"

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	PoolCmd: poolCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := dispatch(r.Context(), &inter)
	if resp == nil {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

// dispatch answers a verified interaction; nil means the interaction type is
// not handled
func dispatch(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	switch inter.Type {
	case discordgo.InteractionPing:
		return &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			return &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("unknown command '%v'", name),
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}
		}
		return hdlr(ctx, inter)
	}
	return nil
}

func initClient() {
	pubKeyBytes, err := hex.DecodeString(strings.TrimSpace(os.Getenv(PublicKeyEnvVar)))
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		log.Fatalf("discordbot.init: Failed to parse public key from $%v: %v",
			PublicKeyEnvVar, err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	botAppId = os.Getenv(AppIdEnvVar)
	if botAppId == "" {
		log.Fatalf("discordbot.init: $%v is not set", AppIdEnvVar)
	}

	client, err = discordgo.New("Bot " + os.Getenv(BotTokenEnvVar))
	if err != nil {
		log.Fatalf("dicordbot.init: Failed to initialize discord client: %v", err)
	}
}

func cmdHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:]), nil
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	hexString, err := cmdHash(cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}

	shouldUpdate := (hexString != os.Getenv(CmdHashEnvVar))
	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please set $%v to %v",
			CmdHashEnvVar, hexString)
	}

	return shouldUpdate
}

func poolOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "pool",
		Description: "Pool name or id (as returned by list)",
		Required:    required,
	}
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func poolCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(PoolCmd),
		Description: "Fencing pool commands; try /pool help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PoolHelpCmd),
				Description: "Show usage for pool",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PoolAboutCmd),
				Description: "Show information about fencingpool-tdbot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PoolListCmd),
				Description: "List stored pools",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PoolSheetCmd),
				Description: "Show the pool sheet and bouts of a pool",
				Options: []*discordgo.ApplicationCommandOption{
					poolOption(true),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PoolResultsCmd),
				Description: "Show the results of a finished pool",
				Options: []*discordgo.ApplicationCommandOption{
					poolOption(true),
					broadcastOption(),
				},
			},
		},
	}
}

func registerSlashCommands() {
	poolCmd := poolCommand()
	cmdId := os.Getenv(CmdIdEnvVar)

	if cmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", poolCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", poolCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(poolCmd) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", cmdId, poolCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", poolCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	configPath := flag.String("config", "", "Config file (default $POOLTD_CONFIG)")
	addr := flag.String("addr", ":8080", "Address to serve interactions on")
	flag.Parse()

	ctx := context.Background()
	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	objects, err := objstore.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("discordbot.main: unable to open %v storage: %v",
			cfg.Storage.Kind, err)
	}
	pools = poolstore.New[usafencing.Fencer](objects)
	tieBreak = cfg.Pool.TieBreak

	initClient()
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname, *addr)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
