package locations

// Landmark is a named Douala point of interest used to disambiguate
// free-text location descriptions.
type Landmark struct {
	Name     string   // canonical name
	Area     string   // quartier the landmark belongs to
	Aliases  []string // alternative spellings
	Phrases  []string // common reference phrases ("près de", "face ...")
}

// DefaultGazetteer returns the built-in Douala landmark table. A deployment
// can replace it with rows loaded from the location_matches learning store.
func DefaultGazetteer() []Landmark {
	return []Landmark{
		{Name: "Bonamoussadi", Area: "Bonamoussadi", Aliases: []string{"bonamousadi"}, Phrases: []string{"vers bonamoussadi"}},
		{Name: "Carrefour Kotto", Area: "Bonamoussadi", Aliases: []string{"kotto"}, Phrases: []string{"près du carrefour kotto", "vers kotto"}},
		{Name: "Marché Bonamoussadi", Area: "Bonamoussadi", Aliases: []string{"marché bonamoussadi"}, Phrases: []string{"derrière le marché", "face au marché bonamoussadi"}},
		{Name: "Santa Lucia Bonamoussadi", Area: "Bonamoussadi", Aliases: []string{"santa lucia"}, Phrases: []string{"près de santa lucia"}},
		{Name: "Rond-point Deido", Area: "Deido", Aliases: []string{"rond point deido", "rondpoint deido"}, Phrases: []string{"au rond-point", "vers deido"}},
		{Name: "Marché Central", Area: "Akwa", Aliases: []string{"marche central"}, Phrases: []string{"près du marché central"}},
		{Name: "Boulevard de la Liberté", Area: "Akwa", Aliases: []string{"boulevard liberte"}, Phrases: []string{"sur le boulevard"}},
		{Name: "Carrefour Ndokoti", Area: "Ndokoti", Aliases: []string{"ndokoti"}, Phrases: []string{"vers ndokoti", "au carrefour ndokoti"}},
		{Name: "Stade Bepanda", Area: "Bepanda", Aliases: []string{"stade de bepanda"}, Phrases: []string{"près du stade", "derrière le stade bepanda"}},
		{Name: "Carrefour Makepe", Area: "Makepe", Aliases: []string{"makepe missoke", "makepe"}, Phrases: []string{"vers makepe"}},
		{Name: "Pont de Bonaberi", Area: "Bonaberi", Aliases: []string{"bonaberi"}, Phrases: []string{"après le pont", "vers bonaberi"}},
		{Name: "Hôpital Général", Area: "Bonapriso", Aliases: []string{"hopital general"}, Phrases: []string{"près de l'hôpital général"}},
		{Name: "Bali", Area: "Bali", Aliases: []string{"quartier bali"}, Phrases: []string{"vers bali"}},
		{Name: "Cité des Palmiers", Area: "Cité des Palmiers", Aliases: []string{"cite des palmiers", "palmiers"}, Phrases: []string{"vers les palmiers"}},
		{Name: "Village", Area: "Bonamoussadi", Aliases: []string{"carrefour village"}, Phrases: []string{"au village"}},
		{Name: "Akwa Nord", Area: "Akwa", Aliases: []string{"akwa"}, Phrases: []string{"vers akwa"}},
	}
}
