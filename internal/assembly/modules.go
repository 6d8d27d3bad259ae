package assembly

import (
	"go.uber.org/zap"

	"github.com/jonathan/survey-maker/internal/colorize"
	"github.com/jonathan/survey-maker/internal/refs"
	"github.com/jonathan/survey-maker/internal/texbuild"
	"github.com/jonathan/survey-maker/internal/types"
)

// addAllModules walks the modules in declaration order.
func (b *build) addAllModules() error {
	for _, entry := range b.def {
		module := entry.Module
		if !module.AddThis {
			b.log.Debug("skipping module", zap.String("module", entry.Key))
			continue
		}

		counted := !module.ExcludeFromCount
		if counted {
			b.counts.AddModule(entry.Key)
		}

		b.log.Info("adding module", zap.String("module", entry.Key))
		b.doc.Append(texbuild.Command{Name: "clearpage"})

		trigger, triggered := b.rules.ModuleTrigger(module.Triggers)
		if triggered {
			err := b.doc.Scope(texbuild.Colorize(trigger.Color), func() error {
				return b.addModule(entry.Key, &module, &trigger, counted)
			})
			if err != nil {
				return err
			}
			continue
		}
		if err := b.addModule(entry.Key, &module, nil, counted); err != nil {
			return err
		}
	}
	return nil
}

// addModule emits one module: heading, optional module-level redirection
// line, module info block and all its questions.
func (b *build) addModule(moduleKey string, module *types.ModuleSpec, trigger *colorize.ModuleMatch, counted bool) error {
	for _, p := range texbuild.Section(module.Title, refs.ModuleLabel(moduleKey)) {
		b.doc.Append(p)
	}

	if trigger != nil {
		if target, isGoto := trigger.Trigger.GotoTarget(); isGoto && trigger.CondLabel != "" {
			line := b.redirect.ConditionLine(trigger.CondLabel, target)
			err := b.doc.Scope(texbuild.Info(), func() error {
				b.doc.Append(texbuild.Command{Name: "normalsize", Arguments: []string{line}})
				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	if module.Info != nil {
		if err := b.addInfo(module.Info, defaultFontSize, ""); err != nil {
			return err
		}
	}

	// color forced on every question by the current section, until the next
	// section break
	forcedColor := ""

	for _, qe := range module.Questions {
		question := qe.Question

		if question.Section != nil {
			var err error
			forcedColor, err = b.addSectionBreak(question.Section, trigger != nil)
			if err != nil {
				return err
			}
		}

		if !question.AddThis {
			b.log.Debug("skipping question", zap.String("question", qe.Key))
			continue
		}

		if !types.IsKnownQuestionType(question.Type) {
			b.log.Info("question type not yet implemented, skipping",
				zap.String("question", qe.Key),
				zap.String("type", question.Type))
			b.warnings++
			continue
		}

		b.log.Info("adding question", zap.String("question", qe.Key))

		var localColor, matchedKey string
		if trigger != nil {
			localColor, matchedKey = trigger.Color, trigger.Key
		} else if match, ok := b.rules.FirstMatch(question.Triggers); ok {
			localColor, matchedKey = match.Color, match.Key
		}

		refersPhrase, refersKey, hasRef := b.rules.RefersTo(question.Triggers)
		if !hasRef {
			refersKey = ""
		}

		// a locally matched question color takes priority over the
		// section-forced color
		color := forcedColor
		if localColor != "" {
			color = localColor
		}

		var weight int
		var err error
		if color != "" {
			err = b.doc.Scope(texbuild.Colorize(color), func() error {
				var qerr error
				weight, qerr = b.addQuestion(qe.Key, &question, refersPhrase)
				return qerr
			})
		} else {
			weight, err = b.addQuestion(qe.Key, &question, refersPhrase)
		}
		if err != nil {
			return err
		}

		weight = b.applyCountOverride(&question, matchedKey, refersKey, weight)

		b.counts.RecordQuestion(moduleKey, matchedKey, refersKey, weight, counted)
		if counted && question.IncreaseCounter != "" {
			b.counts.IncreaseCounter(moduleKey, question.IncreaseCounter)
		}
	}

	return nil
}

// applyCountOverride replaces the computed question weight with an explicit
// count override on the matched or refers-to category trigger, matched
// category first.
func (b *build) applyCountOverride(question *types.QuestionSpec, matchedKey, refersKey string, weight int) int {
	for _, key := range []string{matchedKey, refersKey} {
		if key == "" {
			continue
		}
		tv, ok := question.Triggers[key]
		if ok && tv.Kind == types.TriggerRef && tv.Count != nil {
			b.log.Info("overriding question count",
				zap.Int("computed", weight),
				zap.Int("override", *tv.Count))
			return *tv.Count
		}
	}
	return weight
}

// addSectionBreak closes the previous section's forced-color state and emits
// the new section heading, optionally colored and with its own redirection
// line and info block. Returns the color forced on the questions that
// follow, or the empty string. Section triggers are ignored inside a module
// that is already colored as a whole.
func (b *build) addSectionBreak(section *types.SectionBreak, moduleColored bool) (string, error) {
	forced := ""
	refLine := ""

	if !moduleColored {
		if match, ok := b.rules.ModuleTrigger(section.Triggers); ok {
			forced = match.Color
			if target, isGoto := match.Trigger.GotoTarget(); isGoto && match.Category.Label != "" {
				refLine = b.redirect.ConditionLine(match.Category.Label, target)
			}
		}
	}

	heading := texbuild.ModuleSection(section.Title, refs.SectionLabel(section.Title))
	b.doc.Append(texbuild.VSpace(`\parskip`))

	if forced != "" {
		err := b.doc.Scope(texbuild.Colorize(forced), func() error {
			b.doc.Append(heading)
			if refLine != "" {
				return b.doc.Scope(texbuild.Info(), func() error {
					b.doc.Append(texbuild.Command{Name: "normalsize", Arguments: []string{refLine}})
					return nil
				})
			}
			return nil
		})
		if err != nil {
			return "", err
		}
	} else {
		b.doc.Append(heading)
		if refLine != "" {
			err := b.doc.Scope(texbuild.Info(), func() error {
				b.doc.Append(texbuild.Command{Name: "emph", Arguments: []string{refLine}})
				return nil
			})
			if err != nil {
				return "", err
			}
		}
	}

	if section.Info != nil {
		b.doc.Append(texbuild.VSpace(`\parskip`))
		if err := b.addInfo(section.Info, defaultFontSize, forced); err != nil {
			return "", err
		}
	}

	return forced, nil
}
