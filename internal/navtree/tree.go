package navtree

// Node IDs referenced from code. The full tree is declared in alertsTree.
const (
	NodeOverview            = "vue-ensemble"
	NodeEnCours             = "en-cours"
	NodeEnCoursCritiques    = "en-cours-critiques"
	NodeCritiquesPaiements  = "en-cours-critiques-paiements"
	NodeCritiquesValidation = "en-cours-critiques-validations"
	NodeEnCoursWarnings     = "en-cours-avertissements"
	NodeWarningsDelais      = "en-cours-avertissements-delais"
	NodeWarningsBudget      = "en-cours-avertissements-budget"
	NodeEnCoursInfos        = "en-cours-informations"
	NodeTraitements         = "traitements"
	NodeAcquittees          = "traitements-acquittees"
	NodeEscaladees          = "traitements-escaladees"
	NodeResolues            = "traitements-resolues"
	NodeModules             = "modules"
	NodeModuleCommandes     = "modules-bons-de-commande"
	NodeModuleFactures      = "modules-factures"
	NodeModuleAvenants      = "modules-avenants"
	NodeModuleDecisions     = "modules-decisions"
	NodeModuleSubstitutions = "modules-substitutions"
	NodeArchives            = "archives"
)

// DefaultNodeID is where the alert center lands when nothing is selected.
const DefaultNodeID = NodeOverview

// alertsTree is built once and never handed out directly.
var alertsTree = Tree{
	{ID: NodeOverview, Label: "Vue d'ensemble", Route: "/alertes/vue-ensemble"},
	{
		ID: NodeEnCours, Label: "En cours", Route: "/alertes/en-cours",
		Children: []NavNode{
			{
				ID: NodeEnCoursCritiques, Label: "Critiques", Route: "/alertes/en-cours/critiques",
				BadgeType: BadgeCritical,
				Children: []NavNode{
					{ID: NodeCritiquesPaiements, Label: "Paiements bloqués", Route: "/alertes/en-cours/critiques/paiements", BadgeType: BadgeCritical},
					{ID: NodeCritiquesValidation, Label: "Validations en retard", Route: "/alertes/en-cours/critiques/validations", BadgeType: BadgeCritical},
				},
			},
			{
				ID: NodeEnCoursWarnings, Label: "Avertissements", Route: "/alertes/en-cours/avertissements",
				BadgeType: BadgeWarning,
				Children: []NavNode{
					{ID: NodeWarningsDelais, Label: "Délais contractuels", Route: "/alertes/en-cours/avertissements/delais", BadgeType: BadgeWarning},
					{ID: NodeWarningsBudget, Label: "Dépassements budgétaires", Route: "/alertes/en-cours/avertissements/budget", BadgeType: BadgeWarning},
				},
			},
			{ID: NodeEnCoursInfos, Label: "Informations", Route: "/alertes/en-cours/informations", BadgeType: BadgeDefault},
		},
	},
	{
		ID: NodeTraitements, Label: "Traitements", Route: "/alertes/traitements",
		Children: []NavNode{
			{ID: NodeAcquittees, Label: "Acquittées", Route: "/alertes/traitements/acquittees", BadgeType: BadgeDefault},
			{ID: NodeEscaladees, Label: "Escaladées", Route: "/alertes/traitements/escaladees", BadgeType: BadgeWarning},
			{ID: NodeResolues, Label: "Résolues", Route: "/alertes/traitements/resolues", BadgeType: BadgeDefault},
		},
	},
	{
		ID: NodeModules, Label: "Par module", Route: "/alertes/modules",
		Children: []NavNode{
			{ID: NodeModuleCommandes, Label: "Bons de commande", Route: "/alertes/modules/bons-de-commande"},
			{ID: NodeModuleFactures, Label: "Factures", Route: "/alertes/modules/factures"},
			{ID: NodeModuleAvenants, Label: "Avenants", Route: "/alertes/modules/avenants"},
			{ID: NodeModuleDecisions, Label: "Décisions", Route: "/alertes/modules/decisions"},
			{ID: NodeModuleSubstitutions, Label: "Substitutions", Route: "/alertes/modules/substitutions"},
		},
	},
	{ID: NodeArchives, Label: "Archives", Route: "/alertes/archives"},
}

// AlertsTree returns a private copy of the alert center navigation tree.
func AlertsTree() Tree {
	return alertsTree.Clone()
}
