package detection

// Croustibat, DOS VGA floppy.
var Crousti = []Entry{
	{
		GameID:     "crousti",
		Extra:      "v1.01",
		Files:      []FileEntry{{Name: "intro.stk", MD5: "63fd795818fa72c32b903bbd99e18ea1", Size: 851926}},
		Language:   LangPortuguese,
		Platform:   PlatformDOS,
		Flags:      FlagNone,
		GUIOptions: []string{GUINoSubtitles, GUINoSpeech},
		GameType:   GameTypeCrousti,
		Features:   FeaturesAdLib,
	},
	{
		GameID:     "crousti",
		Extra:      "v1.01",
		Files:      []FileEntry{{Name: "intro.stk", MD5: "c660f5500907ecf18a05412d4fda2222", Size: 850731}},
		Language:   LangEnglish,
		Platform:   PlatformDOS,
		Flags:      FlagNone,
		GUIOptions: []string{GUINoSubtitles, GUINoSpeech},
		GameType:   GameTypeCrousti,
		Features:   FeaturesAdLib,
		Note:       "English fan translation by denzquix",
	},
	{
		GameID:     "crousti",
		Extra:      "v1.01",
		Files:      []FileEntry{{Name: "intro.stk", MD5: "df96be976e53cc7de9e2741c45c18a1f", Size: 864746}},
		Language:   LangGerman,
		Platform:   PlatformDOS,
		Flags:      FlagNone,
		GUIOptions: []string{GUINoSubtitles, GUINoSpeech},
		GameType:   GameTypeCrousti,
		Features:   FeaturesAdLib,
		Note:       "German fan translation by BJNFNE",
	},
}
