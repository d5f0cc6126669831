package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/rolltogether/internal/models"
	"github.com/KirkDiggler/rolltogether/internal/score"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
)

// Embed colors
const (
	colorNormal       = 0x00ff00
	colorBotch        = 0x8b0000
	colorFailure      = 0xff8c00
	colorCritical     = 0x1e90ff
	colorTrueCritical = 0xffd700
	colorGeneric      = 0x9370db
	colorError        = 0xff0000
)

// maxHistoryRolls fits one embed field per roll
const maxHistoryRolls = 25

func outcomeColor(roll models.Roll) int {
	skill, ok := roll.(*models.SkillRoll)
	if !ok {
		return colorGeneric
	}

	switch skill.RollOutcomeState {
	case models.RollOutcomeBotch:
		return colorBotch
	case models.RollOutcomeFailure:
		return colorFailure
	case models.RollOutcomeCritical:
		return colorCritical
	case models.RollOutcomeTrueCritical:
		return colorTrueCritical
	}
	return colorNormal
}

// renderSkillDice lists the dice in roll order. Power dice are bracketed and
// contributing dice are bold.
func renderSkillDice(roll *models.SkillRoll, total score.SkillTotal) string {
	parts := make([]string, 0, len(roll.Results))
	for i, die := range roll.Results {
		text := strconv.Itoa(die.Value)
		if die.IsPowerDie {
			text = "[" + text + "]"
		}
		if total.Contributes(i) {
			text = "**" + text + "**"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ") + renderModifier(roll.Modifier)
}

// renderGenericDice groups the values by die type
func renderGenericDice(roll *models.GenericRoll, total score.GenericTotal) string {
	return total.ResultSummary() + renderModifier(roll.Modifier)
}

func renderModifier(modifier int) string {
	switch {
	case modifier > 0:
		return fmt.Sprintf(" + %d", modifier)
	case modifier < 0:
		return fmt.Sprintf(" - %d", -modifier)
	}
	return ""
}

// rollSummary is the one-line description of a roll used in embeds
func rollSummary(roll models.Roll) (headline string, total int, dice string) {
	switch r := roll.(type) {
	case *models.SkillRoll:
		t := score.CalculateSkillTotal(r)
		return messaging.Headline(r), t.Total, renderSkillDice(r, t)
	case *models.GenericRoll:
		t := score.CalculateGenericTotal(r)
		return messaging.HeadlineGenericRoll, t.Total, renderGenericDice(r, t)
	}
	return "", 0, ""
}

// renderRollEmbed shows a single new roll
func renderRollEmbed(roll models.Roll, title, message, syncWarning string) *discordgo.MessageEmbed {
	_, total, dice := rollSummary(roll)

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Total",
			Value:  strconv.Itoa(total),
			Inline: true,
		},
		{
			Name:   "Dice",
			Value:  dice,
			Inline: true,
		},
	}

	switch r := roll.(type) {
	case *models.SkillRoll:
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Pool",
			Value:  fmt.Sprintf("%d skill, crit on %d+", r.DiceCount, r.CriticalThreshold),
			Inline: true,
		})
	case *models.GenericRoll:
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Rolled",
			Value:  score.CalculateGenericTotal(r).RequestSummary(),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       outcomeColor(roll),
		Fields:      fields,
		Timestamp:   roll.Base().Timestamp.Format(time.RFC3339),
	}

	if syncWarning != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: syncWarning}
	}

	return embed
}

// renderHistoryEmbed lists the newest rolls of a room
func renderHistoryEmbed(rolls models.Rolls, limit int) *discordgo.MessageEmbed {
	if limit <= 0 || limit > maxHistoryRolls {
		limit = maxHistoryRolls
	}

	embed := &discordgo.MessageEmbed{
		Title: "Roll History",
		Color: colorNormal,
	}

	if len(rolls) == 0 {
		embed.Description = "No rolls yet. Use `/roll skill` or `/roll generic` to get started."
		return embed
	}

	shown := rolls
	if len(shown) > limit {
		shown = shown[:limit]
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing the newest %d of %d rolls", limit, len(rolls)),
		}
	}

	for _, roll := range shown {
		headline, total, dice := rollSummary(roll)
		name := roll.Base().RollerNickname
		if name == "" {
			name = "Anonymous"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s · %d", name, headline, total),
			Value: dice,
		})
	}

	return embed
}

// renderMacroList lists a player's macros
func renderMacroList(macros []*models.Macro) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Your Macros",
		Color: colorNormal,
	}

	if len(macros) == 0 {
		embed.Description = "No macros saved. Use `/macro save-skill` or `/macro save-generic`."
		return embed
	}

	var lines []string
	for _, macro := range macros {
		lines = append(lines, fmt.Sprintf("**%s**: %s", macro.Name, describeMacro(macro)))
	}
	embed.Description = strings.Join(lines, "\n")

	return embed
}

func describeMacro(macro *models.Macro) string {
	switch {
	case macro.MacroType == models.MacroTypeSkill && macro.Skill != nil:
		desc := fmt.Sprintf("%d skill, crit on %d+%s", macro.Skill.DiceCount, macro.Skill.CriticalThreshold, renderModifier(macro.Skill.Modifier))
		if macro.Skill.IsCombatRoll {
			desc += " (combat)"
		}
		return desc
	case macro.MacroType == models.MacroTypeGeneric && macro.Generic != nil:
		return diceNotation(macro.Generic.SelectedDice) + renderModifier(macro.Generic.Modifier)
	}
	return string(macro.MacroType)
}

// diceNotation compacts runs of the same die in selection order, e.g.
// ["d6", "d6", "d20", "d6"] to "2d6+1d20+1d6"
func diceNotation(selectedDice []string) string {
	var parts []string
	for i := 0; i < len(selectedDice); {
		run := 1
		for i+run < len(selectedDice) && selectedDice[i+run] == selectedDice[i] {
			run++
		}
		parts = append(parts, strconv.Itoa(run)+selectedDice[i])
		i += run
	}
	return strings.Join(parts, "+")
}
