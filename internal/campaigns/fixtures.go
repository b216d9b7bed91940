package campaigns

const placeholderLogo = "https://via.placeholder.com/40"

// DefaultCampaigns is the campaign set served when no other source is configured
var DefaultCampaigns = []Campaign{
	{
		ID:              "c007",
		Title:           "Build On Base: India Pilot (Week 1)",
		Brief:           "We're rewarding Indian builders, KOLs, and creators who help promote the Base Batches program, a weekly wave of new ideas and projects launching on Base. Share your favorite ideas from this week's batch, explain how people can join or build, and encourage more builders to join the momentum.",
		Brand:           "Base Ecosystem",
		BrandLogo:       placeholderLogo,
		MinReward:       0,
		MaxReward:       2000,
		Deadline:        "2025-04-14",
		Status:          StatusLive,
		RequiredTags:    []string{"#BuildOnBase", "base.org/batches", "@base", "Base Batches"},
		Submissions:     12,
		BudgetRemaining: 2000,
		PayoutModel:     "engagement",
	},
	{
		ID:              "c001",
		Title:           "Share Your DeFi Success Story",
		Brief:           "Create a tweet or cast about how using DeFi has positively impacted your financial journey. Include specific platforms or protocols you've used.",
		Brand:           "DeFi Alliance",
		BrandLogo:       placeholderLogo,
		MinReward:       50,
		MaxReward:       500,
		Deadline:        "2025-05-15",
		Status:          StatusLive,
		RequiredTags:    []string{"#DeFiSuccess", "#BuildOnBase", "@defialliance"},
		Submissions:     42,
		BudgetRemaining: 24500,
		PayoutModel:     "engagement",
	},
	{
		ID:              "c002",
		Title:           "Onchain Gaming Highlights",
		Brief:           "Share your best moments playing our new blockchain-based game. Upload a short clip or screenshot with your thoughts.",
		Brand:           "ChainQuest Games",
		BrandLogo:       placeholderLogo,
		MinReward:       25,
		MaxReward:       200,
		Deadline:        "2025-04-30",
		Status:          StatusLive,
		RequiredTags:    []string{"#ChainQuest", "#GameOnchain", "@chainquest"},
		Submissions:     67,
		BudgetRemaining: 15600,
		PayoutModel:     "fixed",
	},
	{
		ID:              "c003",
		Title:           "NFT Collection Review",
		Brief:           "Create content reviewing our latest NFT collection. Highlight your favorite pieces and what makes them special.",
		Brand:           "PixelVerse",
		BrandLogo:       placeholderLogo,
		MinReward:       100,
		MaxReward:       750,
		Deadline:        "2025-05-10",
		Status:          StatusLive,
		RequiredTags:    []string{"#PixelVerseNFT", "#NFTReview", "@pixelverse"},
		Submissions:     29,
		BudgetRemaining: 42000,
		PayoutModel:     "hybrid",
	},
	{
		ID:              "c004",
		Title:           "Wallet Security Tips",
		Brief:           "Share your best practices for securing your crypto wallet and staying safe online.",
		Brand:           "SecureChain",
		BrandLogo:       placeholderLogo,
		MinReward:       75,
		MaxReward:       300,
		Deadline:        "2025-04-25",
		Status:          StatusPending,
		RequiredTags:    []string{"#WalletSecurity", "#CryptoSafety", "@securechain"},
		Submissions:     53,
		BudgetRemaining: 18700,
		PayoutModel:     "fixed",
	},
	{
		ID:              "c005",
		Title:           "Layer 2 Experience",
		Brief:           "Tell us about your experience using Layer 2 solutions. What benefits have you seen in terms of cost and speed?",
		Brand:           "ScaleNet",
		BrandLogo:       placeholderLogo,
		MinReward:       60,
		MaxReward:       450,
		Deadline:        "2025-05-20",
		Status:          StatusLive,
		RequiredTags:    []string{"#Layer2", "#Scaling", "@scalenet"},
		Submissions:     38,
		BudgetRemaining: 32250,
		PayoutModel:     "engagement",
	},
	{
		ID:              "c006",
		Title:           "Crypto Trading Strategies",
		Brief:           "Share your successful crypto trading strategies and tips for beginners in this space.",
		Brand:           "TradeCrypto",
		BrandLogo:       placeholderLogo,
		MinReward:       80,
		MaxReward:       600,
		Deadline:        "2025-04-18",
		Status:          StatusClosed,
		RequiredTags:    []string{"#CryptoTrading", "#TradeTips", "@tradecrypto"},
		Submissions:     75,
		BudgetRemaining: 0,
		PayoutModel:     "hybrid",
	},
}
