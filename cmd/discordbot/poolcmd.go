/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/fencingpool-tdbot/pool"
	"github.com/mikeb26/fencingpool-tdbot/poolstore"
)

type PoolSubCommand string

const (
	PoolAboutCmd   PoolSubCommand = "about"
	PoolHelpCmd    PoolSubCommand = "help"
	PoolListCmd    PoolSubCommand = "list"
	PoolSheetCmd   PoolSubCommand = "sheet"
	PoolResultsCmd PoolSubCommand = "results"
)

var poolSubCmdHdlrs = map[PoolSubCommand]CmdHandler{
	PoolAboutCmd:   poolAboutCmdHandler,
	PoolHelpCmd:    poolHelpCmdHandler,
	PoolListCmd:    poolListCmdHandler,
	PoolSheetCmd:   poolSheetCmdHandler,
	PoolResultsCmd: poolResultsCmdHandler,
}

func poolCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := poolHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := poolSubCmdHdlrs[PoolSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

type subOptions struct {
	pool      string
	broadcast bool
}

func parseSubOptions(inter *discordgo.Interaction) subOptions {
	var opts subOptions
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		if opt.Name == "pool" {
			opts.pool = opt.StringValue()
		} else if opt.Name == "broadcast" {
			opts.broadcast = opt.BoolValue()
		}
	}
	return opts
}

//go:embed about.txt
var aboutText string

func poolAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)
	return resp
}

//go:embed help.md
var helpText string

func poolHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func poolListCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseSubOptions(inter)

	summaries, err := pools.List(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error listing pools: %v", err)
		log.Printf("discordbot.list: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(poolstore.BuildListOutput(summaries)))

	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func poolSheetCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseSubOptions(inter)
	if opts.pool == "" {
		resp.Data.Content = "Please provide a pool."
		log.Printf("discordbot.sheet: %v", resp.Data.Content)
		return resp
	}

	p, err := pools.Find(ctx, opts.pool)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching pool %v: %v", opts.pool, err)
		log.Printf("discordbot.sheet: %v", resp.Data.Content)
		return resp
	}

	out := pool.BuildSheetOutput(p.Sheet, p.Name) + "\n" + pool.BuildBoutsOutput(p.Sheet)
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(out))

	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func poolResultsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := parseSubOptions(inter)
	if opts.pool == "" {
		resp.Data.Content = "Please provide a pool."
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}

	tb, err := pool.TieBreakerByName(tieBreak)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error computing results: %v", err)
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}
	p, err := pools.Find(ctx, opts.pool)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching pool %v: %v", opts.pool, err)
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}
	results, err := p.Sheet.Finish(tb)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Pool %v is not finished: %v", p.Name, err)
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(pool.BuildResultsOutput(results, p.Name)))

	if opts.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
