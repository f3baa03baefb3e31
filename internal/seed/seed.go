// Package seed loads the built-in catalog fixtures: regions, attractions,
// hotels, eco-tasks and charging stations. Collections are seeded lazily the
// first time they are read empty, and in bulk by the recreate endpoint.
package seed

import (
	"context"
	"database/sql"

	"github.com/ecosayahat/backend/internal/models"
)

// All seeds every collection. Inserts are idempotent, existing rows win.
func All(ctx context.Context, db *sql.DB) error {
	for _, fn := range []func(context.Context, *sql.DB) error{
		Regions, Hotels, Tasks, ChargingStations,
	} {
		if err := fn(ctx, db); err != nil {
			return err
		}
	}
	return nil
}

// Tasks seeds the eco-task catalog.
func Tasks(ctx context.Context, db *sql.DB) error {
	for _, t := range taskFixtures {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO tasks (id, title_ru, title_en, title_kz, description_ru, description_en, description_kz, reward_coins, type, image_required)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			t.ID, t.TitleRU, t.TitleEN, t.TitleKZ,
			t.DescriptionRU, t.DescriptionEN, t.DescriptionKZ,
			t.RewardCoins, t.Type, t.ImageRequired); err != nil {
			return err
		}
	}
	return nil
}

// Regions seeds the regions and their attractions together, since the
// attraction list is meaningless without its parent regions.
func Regions(ctx context.Context, db *sql.DB) error {
	for _, reg := range regionFixtures {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO regions (id, name_ru, name_en, name_kz, description_ru, description_en, description_kz, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			reg.ID, reg.NameRU, reg.NameEN, reg.NameKZ,
			reg.DescriptionRU, reg.DescriptionEN, reg.DescriptionKZ, reg.ImageURL); err != nil {
			return err
		}
	}
	for _, a := range attractionFixtures {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO attractions (id, region_id, name_ru, name_en, name_kz, description_ru, description_en, description_kz,
				image_url, vr_url, vr_type, latitude, longitude, average_rating, review_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (id) DO NOTHING`,
			a.ID, a.RegionID, a.NameRU, a.NameEN, a.NameKZ,
			a.DescriptionRU, a.DescriptionEN, a.DescriptionKZ,
			a.ImageURL, a.VRURL, a.VRType, a.Latitude, a.Longitude,
			a.AverageRating, a.ReviewCount); err != nil {
			return err
		}
	}
	return nil
}

// Hotels seeds the hotel catalog.
func Hotels(ctx context.Context, db *sql.DB) error {
	for _, h := range hotelFixtures {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO hotels (id, region_id, name, description, price_per_night, is_partner, image_url, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			h.ID, h.RegionID, h.Name, h.Description,
			h.PricePerNight, h.IsPartner, h.ImageURL, h.Rating); err != nil {
			return err
		}
	}
	return nil
}

// ChargingStations seeds the EV charging station map.
func ChargingStations(ctx context.Context, db *sql.DB) error {
	for _, st := range stationFixtures {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO charging_stations (id, name, latitude, longitude, availability)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			st.ID, st.Name, st.Latitude, st.Longitude, st.Availability); err != nil {
			return err
		}
	}
	return nil
}

var taskFixtures = []models.Task{
	{
		ID:            "task_recycle",
		TitleRU:       "Сортировка мусора",
		TitleEN:       "Waste Sorting",
		TitleKZ:       "Қоқысты сұрыптау",
		DescriptionRU: "Сфотографируйте как вы сортируете отходы",
		DescriptionEN: "Take a photo of you sorting waste",
		DescriptionKZ: "Қалдықтарды сұрыптап жатқаныңызды суретке түсіріңіз",
		RewardCoins:   50,
		Type:          "recycling",
		ImageRequired: true,
	},
	{
		ID:            "task_cleanup",
		TitleRU:       "Уборка территории",
		TitleEN:       "Area Cleanup",
		TitleKZ:       "Аумақты тазалау",
		DescriptionRU: "Снимите на видео как вы убираете мусор на улице",
		DescriptionEN: "Record a video of you cleaning up litter",
		DescriptionKZ: "Көшеде қоқысты жинап жатқаныңызды бейнеге түсіріңіз",
		RewardCoins:   100,
		Type:          "cleanup",
		ImageRequired: true,
	},
	{
		ID:            "task_visit",
		TitleRU:       "Посещение достопримечательности",
		TitleEN:       "Visit Attraction",
		TitleKZ:       "Көрікті жерге бару",
		DescriptionRU: "Сделайте селфи на фоне природной достопримечательности",
		DescriptionEN: "Take a selfie at a natural attraction",
		DescriptionKZ: "Табиғи көрікті жерде селфи түсіріңіз",
		RewardCoins:   30,
		Type:          "visit",
		ImageRequired: true,
	},
	{
		ID:            "task_bin",
		TitleRU:       "Использование эко-контейнера",
		TitleEN:       "Use Eco Bin",
		TitleKZ:       "Эко-контейнерді пайдалану",
		DescriptionRU: "Сфотографируйте как выбрасываете мусор в специальный бак",
		DescriptionEN: "Photo of you throwing trash in a special eco bin",
		DescriptionKZ: "Қоқысты арнайы бакқа тастап жатқаныңызды суретке түсіріңіз",
		RewardCoins:   40,
		Type:          "disposal",
		ImageRequired: true,
	},
}

var regionFixtures = []models.Region{
	{
		ID:            "caspian",
		NameRU:        "Каспий",
		NameEN:        "Caspian",
		NameKZ:        "Каспий",
		DescriptionRU: "Побережье Каспийского моря с уникальными пляжами и природой",
		DescriptionEN: "Caspian Sea coast with unique beaches and nature",
		DescriptionKZ: "Каспий теңізінің жағалауы ерекше жағажайлары мен табиғатымен",
		ImageURL:      "https://images.pexels.com/photos/20591591/pexels-photo-20591591.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
	},
	{
		ID:            "burabay",
		NameRU:        "Бурабай",
		NameEN:        "Burabay",
		NameKZ:        "Бұрабай",
		DescriptionRU: "Национальный парк с живописными озерами и горами",
		DescriptionEN: "National park with picturesque lakes and mountains",
		DescriptionKZ: "Көрнекі көлдері мен таулары бар ұлттық саябақ",
		ImageURL:      "https://images.unsplash.com/photo-1761829717820-98dff45b8d9f?crop=entropy&cs=srgb&fm=jpg&q=85",
	},
	{
		ID:            "alakol",
		NameRU:        "Алаколь",
		NameEN:        "Alakol",
		NameKZ:        "Алакөл",
		DescriptionRU: "Целебное озеро с минеральными водами",
		DescriptionEN: "Healing lake with mineral waters",
		DescriptionKZ: "Минералды сулары бар емдік көл",
		ImageURL:      "https://images.pexels.com/photos/13544773/pexels-photo-13544773.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
	},
	{
		ID:            "balkhash",
		NameRU:        "Балхаш",
		NameEN:        "Balkhash",
		NameKZ:        "Балқаш",
		DescriptionRU: "Уникальное озеро с пресной и соленой водой",
		DescriptionEN: "Unique lake with fresh and salt water",
		DescriptionKZ: "Тұщы және тұзды суы бар бірегей көл",
		ImageURL:      "https://images.pexels.com/photos/32849826/pexels-photo-32849826.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
	},
	{
		ID:            "kolsay",
		NameRU:        "Кольсай",
		NameEN:        "Kolsay",
		NameKZ:        "Көлсай",
		DescriptionRU: "Каскад горных озер в Алматинской области",
		DescriptionEN: "Cascade of mountain lakes in Almaty region",
		DescriptionKZ: "Алматы облысындағы тау көлдерінің каскады",
		ImageURL:      "https://images.pexels.com/photos/24816020/pexels-photo-24816020.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
	},
}

var attractionFixtures = []models.Attraction{
	{
		ID:            "zhumbaktas",
		RegionID:      "burabay",
		NameRU:        "Скала Жумбактас",
		NameEN:        "Zhumbaktas Rock",
		NameKZ:        "Жұмбақтас жартасы",
		DescriptionRU: "Знаменитая скала в форме сфинкса высотой 20 метров на озере Боровое. Название переводится как 'камень-загадка'.",
		DescriptionEN: "Famous sphinx-shaped rock 20 meters high on Lake Borovoye. The name translates as 'mystery stone'.",
		DescriptionKZ: "Боровое көлінде биіктігі 20 метр сфинкс пішінді әйгілі жартас. Аты 'жұмбақ тас' деп аударылады.",
		ImageURL:      "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?w=800",
		VRURL:         "https://cdn.pannellum.org/2.5/pannellum.htm#panorama=https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=2000&autoLoad=true",
		VRType:        "iframe",
		Latitude:      53.0897,
		Longitude:     70.2869,
	},
	{
		ID:            "burabay_lake",
		RegionID:      "burabay",
		NameRU:        "Озеро Бурабай",
		NameEN:        "Burabay Lake",
		NameKZ:        "Бұрабай көлі",
		DescriptionRU: "Жемчужина Казахстана - кристально чистое озеро площадью 10 км², окруженное живописными горами и сосновыми лесами.",
		DescriptionEN: "Pearl of Kazakhstan - crystal clear lake with an area of 10 km², surrounded by picturesque mountains and pine forests.",
		DescriptionKZ: "Қазақстанның інжу-маржаны - көлемі 10 км² мөлдір таза көл, көрікті таулар мен қарағай ормандарымен қоршалған.",
		ImageURL:      "https://images.unsplash.com/photo-1761829717820-98dff45b8d9f?crop=entropy&cs=srgb&fm=jpg&q=85",
		VRURL:         "https://cdn.pannellum.org/2.5/pannellum.htm#panorama=https://images.unsplash.com/photo-1439066615861-d1af74d74000?w=2000&autoLoad=true",
		VRType:        "iframe",
		Latitude:      53.0833,
		Longitude:     70.2833,
	},
	{
		ID:            "okzhetpes",
		RegionID:      "burabay",
		NameRU:        "Гора Окжетпес",
		NameEN:        "Okzhetpes Mountain",
		NameKZ:        "Оқжетпес тауы",
		DescriptionRU: "Величественная гора высотой 300 метров с крутыми склонами. Название означает 'не долетит стрела'.",
		DescriptionEN: "Majestic mountain 300 meters high with steep slopes. The name means 'the arrow will not reach'.",
		DescriptionKZ: "Тік беткейлері бар биіктігі 300 метр салтанатты тау. Аты 'оқ жетпес' дегенді білдіреді.",
		ImageURL:      "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
		VRURL:         "https://cdn.pannellum.org/2.5/pannellum.htm#panorama=https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99?w=2000&autoLoad=true",
		VRType:        "iframe",
		Latitude:      53.0944,
		Longitude:     70.3011,
	},
	{
		ID:            "charyn_canyon",
		RegionID:      "kolsay",
		NameRU:        "Чарынский каньон",
		NameEN:        "Charyn Canyon",
		NameKZ:        "Шарын шатқалы",
		DescriptionRU: "Грандиозный каньон протяженностью 154 км и глубиной до 300 метров, который часто сравнивают с Гранд-Каньоном в США.",
		DescriptionEN: "Grand canyon 154 km long and up to 300 meters deep, often compared to the Grand Canyon in the USA.",
		DescriptionKZ: "Ұзындығы 154 км және тереңдігі 300 метрге дейін, жиі АҚШ-тағы Гранд-Каньонмен салыстырылатын грандиозды шатқал.",
		ImageURL:      "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
		VRURL:         "https://cdn.pannellum.org/2.5/pannellum.htm#panorama=https://images.unsplash.com/photo-1473580044384-7ba9967e16a0?w=2000&autoLoad=true",
		VRType:        "iframe",
		Latitude:      43.3167,
		Longitude:     79.0833,
	},
	{
		ID:            "kolsay_lakes",
		RegionID:      "kolsay",
		NameRU:        "Кольсайские озера",
		NameEN:        "Kolsay Lakes",
		NameKZ:        "Көлсай көлдері",
		DescriptionRU: "Система трех высокогорных озер, расположенных на высотах от 1800 до 2800 метров. Называют 'жемчужинами Северного Тянь-Шаня'.",
		DescriptionEN: "System of three alpine lakes located at altitudes from 1800 to 2800 meters. Called 'pearls of the Northern Tien Shan'.",
		DescriptionKZ: "1800-ден 2800 метр биіктікте орналасқан үш биік таулы көлдер жүйесі. 'Солтүстік Тянь-Шань інжу-маржандары' деп аталады.",
		ImageURL:      "https://images.pexels.com/photos/24816020/pexels-photo-24816020.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
		VRURL:         "https://cdn.pannellum.org/2.5/pannellum.htm#panorama=https://images.unsplash.com/photo-1454496522488-7a8e488e8606?w=2000&autoLoad=true",
		VRType:        "iframe",
		Latitude:      42.9667,
		Longitude:     78.3333,
	},
	{
		ID:            "kaindy_lake",
		RegionID:      "kolsay",
		NameRU:        "Озеро Каинды",
		NameEN:        "Kaindy Lake",
		NameKZ:        "Қайыңды көлі",
		DescriptionRU: "Уникальное озеро с затопленным еловым лесом, образовавшееся после землетрясения 1911 года.",
		DescriptionEN: "Unique lake with a submerged spruce forest, formed after the 1911 earthquake.",
		DescriptionKZ: "1911 жылғы жер сілкінісінен кейін пайда болған су астында қалған шырша орманы бар бірегей көл.",
		ImageURL:      "https://images.unsplash.com/photo-1439066615861-d1af74d74000?w=800",
		VRURL:         "https://cdn.pannellum.org/2.5/pannellum.htm#panorama=https://images.unsplash.com/photo-1433086966358-54859d0ed716?w=2000&autoLoad=true",
		VRType:        "iframe",
		Latitude:      42.9833,
		Longitude:     78.4833,
	},
	{
		ID:            "caspian_beach",
		RegionID:      "caspian",
		NameRU:        "Пляж Актау",
		NameEN:        "Aktau Beach",
		NameKZ:        "Ақтау жағажайы",
		DescriptionRU: "Протяженные песчаные пляжи на берегу Каспийского моря с чистым золотистым песком.",
		DescriptionEN: "Long sandy beaches on the coast of the Caspian Sea with clean golden sand.",
		DescriptionKZ: "Таза алтын құммен Каспий теңізі жағалауындағы ұзын құмды жағажайлар.",
		ImageURL:      "https://images.pexels.com/photos/20591591/pexels-photo-20591591.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
		VRURL:         "https://cdn.pannellum.org/2.5/pannellum.htm#panorama=https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=2000&autoLoad=true",
		VRType:        "iframe",
		Latitude:      43.6532,
		Longitude:     51.1694,
	},
}

var hotelFixtures = []models.Hotel{
	{
		ID:            "hotel_1",
		RegionID:      "burabay",
		Name:          "Eco Resort Burabay",
		Description:   "Эко-отель с видом на озеро",
		PricePerNight: 15000,
		IsPartner:     true,
		ImageURL:      "https://images.pexels.com/photos/14106949/pexels-photo-14106949.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
		Rating:        4.7,
	},
	{
		ID:            "hotel_2",
		RegionID:      "caspian",
		Name:          "Caspian Eco Lodge",
		Description:   "Современный эко-отель на берегу моря",
		PricePerNight: 20000,
		IsPartner:     true,
		ImageURL:      "https://images.pexels.com/photos/14106949/pexels-photo-14106949.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
		Rating:        4.5,
	},
	{
		ID:            "hotel_3",
		RegionID:      "kolsay",
		Name:          "Mountain Eco Camp",
		Description:   "Эко-кемпинг в горах",
		PricePerNight: 10000,
		IsPartner:     false,
		ImageURL:      "https://images.pexels.com/photos/14106949/pexels-photo-14106949.jpeg?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
		Rating:        4.3,
	},
}

var stationFixtures = []models.ChargingStation{
	{ID: "station_1", Name: "Актау Центр", Latitude: 43.6532, Longitude: 51.1694, Availability: true},
	{ID: "station_2", Name: "Бурабай Парк", Latitude: 53.0833, Longitude: 70.2833, Availability: true},
	{ID: "station_3", Name: "Алматы Южная", Latitude: 43.2220, Longitude: 76.8512, Availability: true},
}
