package editor

// Reduce applies one action to the state and returns the next state together
// with the effects the runtime must execute. It never performs I/O itself.
func Reduce(s State, a Action) (State, []Effect) {
	switch act := a.(type) {
	case SelectSection:
		return reduceSelectSection(s, act)
	case SetField:
		return reduceSetField(s, act), nil
	case SelectRecord:
		return reduceSelectRecord(s, act), nil
	case AttachFile:
		s.Encoding = true
		s.ImageDataURI = ""
		return s, []Effect{EncodeFile{Path: act.Path}}
	case FileEncoded:
		s.Encoding = false
		s.ImageDataURI = act.DataURI
		if s.SubmitQueued {
			s.SubmitQueued = false
			return Reduce(s, Submit{})
		}
		return s, nil
	case EncodeFailed:
		s.Encoding = false
		s.SubmitQueued = false
		return withMessage(s, act.Message, true)
	case Submit:
		return reduceSubmit(s)
	case Delete:
		return reduceDelete(s)
	case SubmitOK:
		s.Loading = false
		next, effects := withMessage(s, act.Message, false)
		next = clearForm(next)
		return next, append(effects, refreshEffects(next.Section)...)
	case SubmitErr:
		s.Loading = false
		return withMessage(s, act.Message, true)
	case DeleteOK:
		s.Loading = false
		next, effects := withMessage(s, act.Message, false)
		next = clearForm(next)
		return next, append(effects, refreshEffects(next.Section)...)
	case DeleteErr:
		s.Loading = false
		return withMessage(s, act.Message, true)
	case LocalesLoaded:
		s.Locales = act.Locales
		return s, nil
	case RecordsLoaded:
		s.Records = act.Records
		return s, nil
	case MessageExpired:
		// A newer message may have replaced the one this timer was armed
		// for; only the matching generation clears it.
		if act.Gen == s.MessageGen {
			s.Message = ""
			s.MessageIsError = false
		}
		return s, nil
	case Reset:
		return clearForm(s), nil
	}
	return s, nil
}

// reduceSelectSection switches section. Switching always resets the selection
// to "new": a record chosen under one kind must not silently become an update
// target under another.
func reduceSelectSection(s State, act SelectSection) (State, []Effect) {
	s.Section = act.Section
	s = clearForm(s)
	s.Records = nil
	return s, refreshEffects(act.Section)
}

func reduceSetField(s State, act SetField) State {
	switch act.Field {
	case "name":
		s.Name = act.Value
	case "description":
		s.Description = act.Value
	case "locale":
		s.Locale = act.Value
	case "token":
		s.Token = act.Value
	}
	return s
}

func reduceSelectRecord(s State, act SelectRecord) State {
	if act.Record.ID == "" {
		return clearForm(s)
	}
	s.ID = act.Record.ID
	s.Name = act.Record.Name
	s.Description = act.Record.Description
	s.Locale = act.Record.Locale
	s.ImageDataURI = ""
	s.SubmitQueued = false
	return s
}

func reduceSubmit(s State) (State, []Effect) {
	if s.Loading {
		return s, nil
	}
	if s.Encoding {
		// The attachment is still being read; fire once it lands.
		s.SubmitQueued = true
		return s, nil
	}
	s.Loading = true
	if s.Section == SectionLocales {
		return s, []Effect{RegisterLocale{Token: s.Token, Language: s.Locale}}
	}
	return s, []Effect{SaveDraft{
		Token:       s.Token,
		Kind:        s.Section,
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Locale:      s.Locale,
		Image:       s.ImageDataURI,
	}}
}

func reduceDelete(s State) (State, []Effect) {
	if s.Loading {
		return s, nil
	}
	if s.Section == SectionLocales {
		if s.Locale == "" {
			return s, nil
		}
		s.Loading = true
		return s, []Effect{RemoveLocale{Token: s.Token, Language: s.Locale}}
	}
	if s.ID == "" {
		return s, nil
	}
	s.Loading = true
	return s, []Effect{DeleteDraft{Token: s.Token, Kind: s.Section, ID: s.ID}}
}

// withMessage installs a transient message and arms its expiry timer.
func withMessage(s State, msg string, isErr bool) (State, []Effect) {
	s.Message = msg
	s.MessageIsError = isErr
	s.MessageGen++
	return s, []Effect{ExpireMessage{Gen: s.MessageGen}}
}

// clearForm resets the draft to "new record", keeping the token, the section
// and the loaded reference data.
func clearForm(s State) State {
	s.ID = ""
	s.Name = ""
	s.Description = ""
	s.Locale = ""
	s.ImageDataURI = ""
	s.Encoding = false
	s.SubmitQueued = false
	return s
}

// refreshEffects are the reference-data loads a section needs.
func refreshEffects(section Section) []Effect {
	if section == SectionLocales {
		return []Effect{LoadLocales{}}
	}
	return []Effect{LoadLocales{}, LoadRecords{Kind: section}}
}
